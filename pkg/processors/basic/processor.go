// Package basic implements the aggregate statistics processor: model-wide
// counts, distributions, the activity heatmap and the mood signal.
package basic

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/Sumatoshi-tech/chatfang/pkg/analytics"
	"github.com/Sumatoshi-tech/chatfang/pkg/chat"
	"github.com/Sumatoshi-tech/chatfang/pkg/mathutil"
	"github.com/Sumatoshi-tech/chatfang/pkg/processors"
)

// Type is the processor type key for basic statistics.
const Type = "basic"

// Late-night window bounds: hours 22-23 and 0-4, a 7-hour window spanning
// midnight.
const (
	lateNightStart = 22
	lateNightEnd   = 4
)

// DateCount is one date bucket of the daily distribution.
type DateCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// HourCount is one hour bucket of the hourly distribution.
type HourCount struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

// HeatmapCell is one populated (date, hour) cell of the activity heatmap.
type HeatmapCell struct {
	Date      string `json:"date"`
	Hour      int    `json:"hour"`
	Count     int    `json:"count"`
	DayOfWeek int    `json:"dayOfWeek"`
}

// Stats is the payload published under the "basic" type key.
type Stats struct {
	TotalMessages         int            `json:"totalMessages"`
	Participants          []string       `json:"participants"`
	MessagesByParticipant map[string]int `json:"messagesByParticipant"`
	MediaCount            int            `json:"mediaCount"`
	MessagesByDate        []DateCount    `json:"messagesByDate"`
	TimeDistribution      []HourCount    `json:"timeDistribution"`
	EmojiCount            map[string]int `json:"emojiCount"`

	// AverageMessageLength is nil for empty transcripts: a mean over zero
	// messages is undefined, not zero.
	AverageMessageLength *float64 `json:"averageMessageLength"`

	// MostActiveDate is nil for empty transcripts. Ties resolve to the
	// first-encountered date.
	MostActiveDate *DateCount `json:"mostActiveDate"`

	LateNightPercentage int           `json:"lateNightPercentage"`
	ActivityHeatmap     []HeatmapCell `json:"activityHeatmap"`
	MoodPatterns        []MoodPoint   `json:"moodPatterns"`
}

// Kind implements processors.Payload.
func (Stats) Kind() string { return Type }

// Config controls optional processor behavior.
type Config struct {
	// LexiconSentiment enables the VADER lexicon refinement on mood
	// points. The heuristic fields are computed either way.
	LexiconSentiment bool
}

// Processor computes the aggregate statistics. It has no dependencies and
// reads the data model without mutating it.
type Processor struct {
	mood *MoodAnalyzer
}

// NewProcessor creates a basic statistics processor.
func NewProcessor(cfg Config) *Processor {
	return &Processor{mood: NewMoodAnalyzer(cfg.LexiconSentiment)}
}

// Type implements processors.Processor.
func (p *Processor) Type() string { return Type }

// Dependencies implements processors.Processor. Basic statistics depend on
// nothing.
func (p *Processor) Dependencies() []string { return nil }

// Process reduces the data model to aggregate statistics.
func (p *Processor) Process(_ context.Context, data *analytics.Data) (processors.Result, error) {
	stats := Stats{
		TotalMessages:         data.TotalMessages(),
		Participants:          participantIDs(data),
		MessagesByParticipant: messagesByParticipant(data),
		MediaCount:            mediaCount(data),
		MessagesByDate:        dateCounts(data.Timeframes.Daily),
		TimeDistribution:      hourCounts(data.Timeframes.Hourly),
		EmojiCount:            emojiFrequencies(data),
		LateNightPercentage:   lateNightPercentage(data),
		ActivityHeatmap:       activityHeatmap(data),
		MoodPatterns:          p.mood.AnalyzeAll(data.Messages),
	}

	if data.TotalMessages() > 0 {
		avg := averageMessageLength(data)
		stats.AverageMessageLength = &avg
		stats.MostActiveDate = mostActiveDate(data.Timeframes.Daily)
	}

	return processors.NewResult(stats), nil
}

// Update recomputes the statistics from scratch.
func (p *Processor) Update(ctx context.Context, data *analytics.Data) (processors.Result, error) {
	return p.Process(ctx, data)
}

func participantIDs(data *analytics.Data) []string {
	ids := make([]string, len(data.ParticipantOrder))
	copy(ids, data.ParticipantOrder)

	return ids
}

func messagesByParticipant(data *analytics.Data) map[string]int {
	counts := make(map[string]int, len(data.Participants))
	for id, participant := range data.Participants {
		counts[id] = participant.MessageCount
	}

	return counts
}

func mediaCount(data *analytics.Data) int {
	count := 0

	for _, msg := range data.Messages {
		if msg.IsMedia() {
			count++
		}
	}

	return count
}

func dateCounts(daily *analytics.Counter[string]) []DateCount {
	counts := make([]DateCount, 0, daily.Len())
	for _, date := range daily.Keys() {
		counts = append(counts, DateCount{Date: date, Count: daily.Get(date)})
	}

	return counts
}

func hourCounts(hourly *analytics.Counter[int]) []HourCount {
	counts := make([]HourCount, 0, hourly.Len())
	for _, hour := range hourly.Keys() {
		counts = append(counts, HourCount{Hour: hour, Count: hourly.Get(hour)})
	}

	return counts
}

// emojiFrequencies builds a per-code-point frequency table. Only messages
// already flagged as containing emoji are scanned.
func emojiFrequencies(data *analytics.Data) map[string]int {
	freqs := make(map[string]int)

	for _, msg := range data.Messages {
		if !msg.Metadata.HasEmoji {
			continue
		}

		for _, emoji := range chat.ExtractEmoji(msg.Content) {
			freqs[emoji]++
		}
	}

	return freqs
}

func averageMessageLength(data *analytics.Data) float64 {
	total := 0
	for _, msg := range data.Messages {
		total += utf8.RuneCountInString(msg.Content)
	}

	return float64(total) / float64(data.TotalMessages())
}

func mostActiveDate(daily *analytics.Counter[string]) *DateCount {
	var best *DateCount

	for _, date := range daily.Keys() {
		count := daily.Get(date)
		if best == nil || count > best.Count {
			best = &DateCount{Date: date, Count: count}
		}
	}

	return best
}

// IsLateNightHour reports whether the hour falls in the 22:00-04:59
// window.
func IsLateNightHour(hour int) bool {
	return hour >= lateNightStart || hour <= lateNightEnd
}

func lateNightPercentage(data *analytics.Data) int {
	lateNight := 0

	for _, msg := range data.Messages {
		if IsLateNightHour(msg.Hour()) {
			lateNight++
		}
	}

	return mathutil.RoundPercent(lateNight, data.TotalMessages())
}

// heatKey identifies one populated heatmap cell.
type heatKey struct {
	date string
	hour int
}

func activityHeatmap(data *analytics.Data) []HeatmapCell {
	cells := analytics.NewCounter[heatKey]()

	for _, msg := range data.Messages {
		cells.Inc(heatKey{date: msg.Date(), hour: msg.Hour()})
	}

	heatmap := make([]HeatmapCell, 0, cells.Len())

	for _, key := range cells.Keys() {
		heatmap = append(heatmap, HeatmapCell{
			Date:      key.date,
			Hour:      key.hour,
			Count:     cells.Get(key),
			DayOfWeek: dayOfWeek(key.date),
		})
	}

	return heatmap
}

// dayOfWeek returns the weekday (Sunday = 0) for an ISO calendar date.
func dayOfWeek(date string) int {
	ts, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return 0
	}

	return int(ts.Weekday())
}
