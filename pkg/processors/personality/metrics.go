package personality

import (
	"math"
	"sort"
	"time"
	"unicode/utf8"

	"github.com/Sumatoshi-tech/chatfang/pkg/analytics"
	"github.com/Sumatoshi-tech/chatfang/pkg/chat"
	"github.com/Sumatoshi-tech/chatfang/pkg/mathutil"
)

// Daily period boundaries, by hour of day. Night wraps midnight.
const (
	morningStart   = 5
	morningEnd     = 11
	afternoonStart = 12
	afternoonEnd   = 16
	eveningStart   = 17
	eveningEnd     = 21
	nightStart     = 22
	nightEnd       = 4
)

const favoriteEmojiLimit = 5

// PeriodActivity splits a participant's messages across the four day
// periods, each as a percentage of their total.
type PeriodActivity struct {
	Morning   float64 `json:"morning"`
	Afternoon float64 `json:"afternoon"`
	Evening   float64 `json:"evening"`
	Night     float64 `json:"night"`
}

// ActivityMetrics describes when a participant is active.
type ActivityMetrics struct {
	// Hourly counts messages per hour of day, 0 through 23.
	Hourly [24]int `json:"hourlyDistribution"`

	// Weekly counts messages per weekday, Sunday first.
	Weekly [7]int `json:"weeklyDistribution"`

	Periods PeriodActivity `json:"periodActivity"`
}

// EmojiCount pairs one emoji with its usage count.
type EmojiCount struct {
	Emoji string `json:"emoji"`
	Count int    `json:"count"`
}

// EmojiUsage summarizes how a participant uses emoji.
type EmojiUsage struct {
	// Frequency is the percentage of messages containing at least one
	// emoji.
	Frequency float64 `json:"frequency"`

	// Favorites lists the participant's most used emoji, highest count
	// first, at most five entries.
	Favorites []EmojiCount `json:"favorites"`
}

// CommunicationMetrics describes how a participant writes.
type CommunicationMetrics struct {
	AverageMessageLength float64 `json:"averageMessageLength"`

	// MessageVariability is the population standard deviation of message
	// lengths.
	MessageVariability float64 `json:"messageVariability"`

	EmojiUsage EmojiUsage `json:"emojiUsage"`

	// MediaSharing is the percentage of the participant's messages that
	// are media.
	MediaSharing float64 `json:"mediaSharing"`
}

// InteractionMetrics describes how a participant engages with others. All
// four values are percentages in [0, 100]. Thread and response inputs may
// be empty, in which case the rates they feed are zero.
type InteractionMetrics struct {
	// InitiationRate is the share of conversation threads this
	// participant started.
	InitiationRate float64 `json:"initiationRate"`

	// ResponseRate is recorded responses over the participant's message
	// count.
	ResponseRate float64 `json:"responseRate"`

	// EngagementScore is the share of other participants this one has a
	// recorded interaction with.
	EngagementScore float64 `json:"engagementScore"`

	// ConversationImpact is this participant's share of all transcript
	// messages.
	ConversationImpact float64 `json:"conversationImpact"`
}

// SummaryMetrics are the four headline numbers shown on a profile card.
type SummaryMetrics struct {
	// ResponseTime is the mean recorded response latency in seconds,
	// zero when no responses were recorded.
	ResponseTime float64 `json:"responseTime"`

	MessageLength float64 `json:"messageLength"`

	// ActivityConsistency is active days over the participant's total
	// span in days, as a percentage.
	ActivityConsistency float64 `json:"activityConsistency"`

	// SocialConnection is distinct interaction partners over the other
	// participants, as a percentage.
	SocialConnection float64 `json:"socialConnection"`
}

// inPeriod reports whether the hour falls inside a period, handling the
// midnight wrap of the night period.
func inPeriod(hour, start, end int) bool {
	if start <= end {
		return hour >= start && hour <= end
	}

	return hour >= start || hour <= end
}

func isNightHour(hour int) bool {
	return inPeriod(hour, nightStart, nightEnd)
}

func activityMetrics(p *analytics.Participant) ActivityMetrics {
	var m ActivityMetrics

	periods := struct{ morning, afternoon, evening, night int }{}

	for _, msg := range p.Messages {
		hour := msg.Hour()
		m.Hourly[hour]++
		m.Weekly[int(msg.Timestamp.Weekday())]++

		switch {
		case inPeriod(hour, morningStart, morningEnd):
			periods.morning++
		case inPeriod(hour, afternoonStart, afternoonEnd):
			periods.afternoon++
		case inPeriod(hour, eveningStart, eveningEnd):
			periods.evening++
		case isNightHour(hour):
			periods.night++
		}
	}

	m.Periods = PeriodActivity{
		Morning:   mathutil.Percent(periods.morning, p.MessageCount),
		Afternoon: mathutil.Percent(periods.afternoon, p.MessageCount),
		Evening:   mathutil.Percent(periods.evening, p.MessageCount),
		Night:     mathutil.Percent(periods.night, p.MessageCount),
	}

	return m
}

func communicationMetrics(p *analytics.Participant) CommunicationMetrics {
	lengths := make([]float64, 0, len(p.Messages))
	emojiMessages := 0
	mediaMessages := 0
	emojiCounts := analytics.NewCounter[string]()

	for _, msg := range p.Messages {
		lengths = append(lengths, float64(utf8.RuneCountInString(msg.Content)))

		if msg.IsMedia() {
			mediaMessages++
		}

		if msg.Metadata.HasEmoji {
			emojiMessages++

			for _, emoji := range chat.ExtractEmoji(msg.Content) {
				emojiCounts.Inc(emoji)
			}
		}
	}

	return CommunicationMetrics{
		AverageMessageLength: mathutil.Mean(lengths),
		MessageVariability:   mathutil.StdDev(lengths),
		EmojiUsage: EmojiUsage{
			Frequency: mathutil.Percent(emojiMessages, p.MessageCount),
			Favorites: favoriteEmoji(emojiCounts),
		},
		MediaSharing: mathutil.Percent(mediaMessages, p.MessageCount),
	}
}

// favoriteEmoji returns the top entries by count. Ties keep first-use
// order, which the counter preserves.
func favoriteEmoji(counts *analytics.Counter[string]) []EmojiCount {
	favorites := make([]EmojiCount, 0, counts.Len())
	for _, emoji := range counts.Keys() {
		favorites = append(favorites, EmojiCount{Emoji: emoji, Count: counts.Get(emoji)})
	}

	sort.SliceStable(favorites, func(i, j int) bool {
		return favorites[i].Count > favorites[j].Count
	})

	if len(favorites) > favoriteEmojiLimit {
		favorites = favorites[:favoriteEmojiLimit]
	}

	return favorites
}

func interactionMetrics(p *analytics.Participant, data *analytics.Data) InteractionMetrics {
	threads := data.Interactions.Threads
	started := threadsStartedBy(p.ID, threads)

	responses := len(data.Interactions.ResponseTimes[p.ID])

	return InteractionMetrics{
		InitiationRate:     mathutil.Percent(started, len(threads)),
		ResponseRate:       mathutil.ClampPercent(mathutil.Percent(responses, p.MessageCount)),
		EngagementScore:    engagementScore(p.ID, data),
		ConversationImpact: mathutil.Percent(p.MessageCount, data.TotalMessages()),
	}
}

func threadsStartedBy(id string, threads []analytics.Thread) int {
	started := 0
	for _, thread := range threads {
		if thread.StartMessage.Sender == id {
			started++
		}
	}

	return started
}

// engagementScore is the share of other participants this one mentions.
// A single-participant transcript has nobody to engage, so it scores zero.
func engagementScore(id string, data *analytics.Data) float64 {
	others := len(data.Participants) - 1
	if others < 1 {
		return 0
	}

	partners := len(data.Interactions.Graph[id])

	return mathutil.ClampPercent(mathutil.Percent(partners, others))
}

func summaryMetrics(p *analytics.Participant, data *analytics.Data, comm CommunicationMetrics) SummaryMetrics {
	return SummaryMetrics{
		ResponseTime:        mathutil.Mean(data.Interactions.ResponseTimes[p.ID]),
		MessageLength:       comm.AverageMessageLength,
		ActivityConsistency: activityConsistency(p),
		SocialConnection:    engagementScore(p.ID, data),
	}
}

// activityConsistency is active days over the participant's first-to-last
// span. A span inside a single day counts as one day, so a one-day
// participant is fully consistent rather than dividing by zero.
func activityConsistency(p *analytics.Participant) float64 {
	if p.MessageCount == 0 {
		return 0
	}

	span := p.LastMessage.Sub(p.FirstMessage)

	totalDays := int(math.Ceil(span.Hours() / 24))
	if totalDays < 1 {
		totalDays = 1
	}

	return mathutil.ClampPercent(mathutil.Percent(len(p.ActiveDays), totalDays))
}

// mostActiveDay returns the participant's busiest calendar date and its
// message count. Ties resolve to the earliest-seen date.
func mostActiveDay(p *analytics.Participant) (string, int, time.Time) {
	days := analytics.NewCounter[string]()
	firstAt := make(map[string]time.Time)

	for _, msg := range p.Messages {
		date := msg.Date()
		days.Inc(date)

		if _, seen := firstAt[date]; !seen {
			firstAt[date] = msg.Timestamp
		}
	}

	bestDate := ""
	bestCount := 0

	for _, date := range days.Keys() {
		if count := days.Get(date); count > bestCount {
			bestDate = date
			bestCount = count
		}
	}

	return bestDate, bestCount, firstAt[bestDate]
}
