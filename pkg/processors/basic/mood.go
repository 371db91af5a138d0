package basic

import (
	"strings"
	"time"
	"unicode"

	"github.com/jonreiter/govader"

	"github.com/Sumatoshi-tech/chatfang/pkg/chat"
	"github.com/Sumatoshi-tech/chatfang/pkg/mathutil"
)

// The mood signal is a heuristic, not NLP: a fixed emoji lexicon plus an
// emphasis check. Treat its output as approximate.

// Heuristic constants.
const (
	baseIntensity      = 0.5
	emojiSentimentStep = 0.5
	emojiIntensityStep = 0.2
	emphasisIntensity  = 0.3

	positiveThreshold = 0.3
	negativeThreshold = -0.3

	// emphasisRunLength is the minimum run of exclamation marks, capital
	// letters or repeated characters that counts as emphasis.
	emphasisRunLength = 3
)

// Mood labels.
const (
	MoodPositive = "positive"
	MoodNegative = "negative"
	MoodNeutral  = "neutral"
)

// Emoji lexicons for the heuristic.
var (
	positiveEmoji = []string{"😊", "😄", "😃", "😀", "🙂", "👍", "❤️", "💕", "✨"}
	negativeEmoji = []string{"😢", "😭", "😞", "😔", "👎", "💔", "😠", "😡"}
)

// MoodPoint is the per-message sentiment estimate.
type MoodPoint struct {
	Timestamp time.Time `json:"timestamp"`

	// Sentiment is in [-1, 1].
	Sentiment float64 `json:"sentiment"`

	// Intensity is in [0, 1].
	Intensity float64 `json:"intensity"`

	// Mood is "positive", "negative" or "neutral".
	Mood string `json:"mood"`

	// TextScore is the VADER compound score in [-1, 1], present only when
	// lexicon refinement is enabled. It never feeds back into the
	// heuristic fields above.
	TextScore *float64 `json:"textScore,omitempty"`
}

// MoodAnalyzer derives mood points from message bodies.
type MoodAnalyzer struct {
	lexicon *govader.SentimentIntensityAnalyzer
}

// NewMoodAnalyzer creates a mood analyzer, with the optional VADER
// lexicon refinement.
func NewMoodAnalyzer(withLexicon bool) *MoodAnalyzer {
	ma := &MoodAnalyzer{}
	if withLexicon {
		ma.lexicon = govader.NewSentimentIntensityAnalyzer()
	}

	return ma
}

// AnalyzeAll returns one mood point per message, in message order.
func (ma *MoodAnalyzer) AnalyzeAll(messages []chat.Message) []MoodPoint {
	points := make([]MoodPoint, 0, len(messages))
	for _, msg := range messages {
		points = append(points, ma.Analyze(msg))
	}

	return points
}

// Analyze estimates sentiment for a single message.
func (ma *MoodAnalyzer) Analyze(msg chat.Message) MoodPoint {
	sentiment := 0.0
	intensity := baseIntensity

	if containsAny(msg.Content, positiveEmoji) {
		sentiment += emojiSentimentStep
		intensity += emojiIntensityStep
	}

	if containsAny(msg.Content, negativeEmoji) {
		sentiment -= emojiSentimentStep
		intensity += emojiIntensityStep
	}

	if hasEmphasis(msg.Content) {
		intensity += emphasisIntensity
	}

	sentiment = mathutil.Clamp(sentiment, -1, 1)
	intensity = mathutil.Clamp(intensity, 0, 1)

	point := MoodPoint{
		Timestamp: msg.Timestamp,
		Sentiment: sentiment,
		Intensity: intensity,
		Mood:      moodLabel(sentiment),
	}

	if ma.lexicon != nil && strings.TrimSpace(msg.Content) != "" {
		compound := ma.lexicon.PolarityScores(msg.Content).Compound
		point.TextScore = &compound
	}

	return point
}

func moodLabel(sentiment float64) string {
	switch {
	case sentiment > positiveThreshold:
		return MoodPositive
	case sentiment < negativeThreshold:
		return MoodNegative
	default:
		return MoodNeutral
	}
}

func containsAny(s string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(s, needle) {
			return true
		}
	}

	return false
}

// hasEmphasis reports whether the body shows emphasis: a run of 3+
// identical characters (which covers "!!!"), or 3+ consecutive capital
// letters.
func hasEmphasis(s string) bool {
	var prev rune

	repeats := 1
	uppers := 0

	for _, r := range s {
		if r == prev {
			repeats++
		} else {
			repeats = 1
			prev = r
		}

		if unicode.IsUpper(r) {
			uppers++
		} else {
			uppers = 0
		}

		if repeats >= emphasisRunLength || uppers >= emphasisRunLength {
			return true
		}
	}

	return false
}
