package chat

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// lineExpr matches one exported message line:
// `DD/MM/YY, HH:MM - Sender: body`. The sender group stops at the first
// colon, so display names containing a colon do not parse. That limitation
// matches the export format and is accepted.
var lineExpr = regexp.MustCompile(`^(\d{2})/(\d{2})/(\d{2}),\s(\d{2}):(\d{2})\s-\s([^:]+):\s(.+)$`)

// yearBase maps two-digit transcript years into the 2000s.
const yearBase = 2000

// Parser turns raw transcript lines into Messages.
//
// A line that does not match the export grammar is not an error: most such
// lines are continuation lines of a multi-line message or system notices,
// and the parser deliberately drops them instead of attempting to stitch
// them together.
type Parser struct{}

// NewParser creates a transcript line parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses a single transcript line. The second return value reports
// whether the line matched the grammar; Parse never fails in any other way.
func (p *Parser) Parse(line string) (Message, bool) {
	groups := lineExpr.FindStringSubmatch(line)
	if groups == nil {
		return Message{}, false
	}

	day, _ := strconv.Atoi(groups[1])
	month, _ := strconv.Atoi(groups[2])
	year, _ := strconv.Atoi(groups[3])
	hour, _ := strconv.Atoi(groups[4])
	minute, _ := strconv.Atoi(groups[5])

	sender := strings.TrimSpace(groups[6])
	content := strings.TrimSpace(groups[7])

	msgType := TypeText
	if strings.Contains(content, MediaOmittedMarker) {
		msgType = TypeMedia
	}

	return Message{
		Timestamp: time.Date(yearBase+year, time.Month(month), day, hour, minute, 0, 0, time.UTC),
		Sender:    sender,
		Content:   content,
		Type:      msgType,
		Metadata: Metadata{
			HasEmoji:    ContainsEmoji(content),
			IsForwarded: strings.Contains(content, ForwardedMarker),
		},
	}, true
}
