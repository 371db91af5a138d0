package config

// Default analysis settings.
const (
	DefaultThreads          = false
	DefaultThreadGap        = "30m"
	DefaultLexiconSentiment = false
)

// Default output settings.
const (
	DefaultOutputFormat = FormatText
	DefaultExportPath   = ""
	DefaultCompress     = false
	DefaultValidate     = false
	DefaultPlot         = false
)

// Default observability settings.
const (
	DefaultServiceName        = "chatfang"
	DefaultEnvironment        = "dev"
	DefaultOTLPEndpoint       = ""
	DefaultOTLPInsecure       = false
	DefaultLogLevel           = "info"
	DefaultLogFormat          = "text"
	DefaultShutdownTimeoutSec = 5
)
