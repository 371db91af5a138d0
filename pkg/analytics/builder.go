package analytics

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Sumatoshi-tech/chatfang/pkg/chat"
)

// mentionExpr extracts `@name` tokens from message bodies. The token runs
// over word characters and interior spaces; trailing whitespace is trimmed
// after extraction.
var mentionExpr = regexp.MustCompile(`@[\w\s]+`)

// DefaultThreadGap is the idle duration that starts a new conversation
// thread when segmentation is enabled.
const DefaultThreadGap = 30 * time.Minute

// Options configures optional model enrichment.
type Options struct {
	// ThreadGap enables conversation thread segmentation when positive:
	// a gap of at least this duration between consecutive messages starts
	// a new thread. Zero disables segmentation, leaving Threads and
	// ResponseTimes empty.
	ThreadGap time.Duration
}

// Builder folds a transcript into one Data instance. The fold is a single
// left-to-right pass in line order, with no reordering and no parallelism,
// so bucket counts and activity sets are deterministic everywhere.
type Builder struct {
	parser *chat.Parser
	opts   Options
}

// NewBuilder creates a Builder with the given options.
func NewBuilder(opts Options) *Builder {
	return &Builder{
		parser: chat.NewParser(),
		opts:   opts,
	}
}

// Build parses the raw transcript and constructs the full data model.
// Lines that do not match the message grammar contribute nothing.
func (b *Builder) Build(transcript string) *Data {
	data := NewData()

	for _, line := range strings.Split(transcript, "\n") {
		msg, ok := b.parser.Parse(line)
		if !ok {
			continue
		}

		data.Messages = append(data.Messages, msg)
		b.updateParticipant(data, msg)
		b.updateTimeframes(data, msg)
		b.updateInteractions(data, msg)
	}

	if b.opts.ThreadGap > 0 {
		b.segmentThreads(data)
	}

	return data
}

func (b *Builder) updateParticipant(data *Data, msg chat.Message) {
	participant, exists := data.Participants[msg.Sender]
	if !exists {
		participant = &Participant{
			ID:           msg.Sender,
			Name:         msg.Sender,
			FirstMessage: msg.Timestamp,
			LastMessage:  msg.Timestamp,
			ActiveHours:  make(map[int]struct{}),
			ActiveDays:   make(map[string]struct{}),
		}
		data.Participants[msg.Sender] = participant
		data.ParticipantOrder = append(data.ParticipantOrder, msg.Sender)
	}

	participant.Messages = append(participant.Messages, msg)
	participant.MessageCount++
	participant.LastMessage = msg.Timestamp
	participant.ActiveHours[msg.Hour()] = struct{}{}
	participant.ActiveDays[msg.Date()] = struct{}{}
}

func (b *Builder) updateTimeframes(data *Data, msg chat.Message) {
	_, week := msg.Timestamp.ISOWeek()

	data.Timeframes.Hourly.Inc(msg.Hour())
	data.Timeframes.Daily.Inc(msg.Date())
	data.Timeframes.Weekly.Inc(week)
	data.Timeframes.Monthly.Inc(msg.Timestamp.Format("2006-01"))
}

func (b *Builder) updateInteractions(data *Data, msg chat.Message) {
	graph, exists := data.Interactions.Graph[msg.Sender]
	if !exists {
		graph = make(map[string]struct{})
		data.Interactions.Graph[msg.Sender] = graph
	}

	for _, token := range mentionExpr.FindAllString(msg.Content, -1) {
		mentioned := strings.TrimSpace(strings.TrimPrefix(token, "@"))
		if mentioned == "" {
			continue
		}

		graph[mentioned] = struct{}{}
		data.Interactions.Mentions[msg.Sender] = append(data.Interactions.Mentions[msg.Sender], mentioned)
	}
}

// segmentThreads groups messages into conversation threads after the fold
// and records response latencies within each thread. A response is a
// message following one from a different sender.
func (b *Builder) segmentThreads(data *Data) {
	if len(data.Messages) == 0 {
		return
	}

	var current *Thread

	flush := func() {
		if current == nil {
			return
		}

		last := current.Messages[len(current.Messages)-1]
		current.Duration = last.Timestamp.Sub(current.StartMessage.Timestamp)

		if minutes := current.Duration.Minutes(); minutes > 0 {
			current.Intensity = float64(len(current.Messages)) / minutes
		}

		data.Interactions.Threads = append(data.Interactions.Threads, *current)
		current = nil
	}

	for i, msg := range data.Messages {
		if current != nil && msg.Timestamp.Sub(data.Messages[i-1].Timestamp) >= b.opts.ThreadGap {
			flush()
		}

		if current == nil {
			current = &Thread{
				ID:           uuid.NewString(),
				StartMessage: msg,
				Participants: make(map[string]struct{}),
			}
		} else if prev := data.Messages[i-1]; prev.Sender != msg.Sender {
			latency := msg.Timestamp.Sub(prev.Timestamp).Seconds()
			data.Interactions.ResponseTimes[msg.Sender] = append(data.Interactions.ResponseTimes[msg.Sender], latency)
		}

		current.Messages = append(current.Messages, msg)
		current.Participants[msg.Sender] = struct{}{}
	}

	flush()
}
