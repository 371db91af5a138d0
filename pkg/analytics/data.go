// Package analytics holds the shared in-memory data model every processor
// reads: parsed messages, per-participant activity, time-bucketed counters
// and the mention-derived interaction graph. One Data instance belongs to
// exactly one run and is conceptually frozen once built.
package analytics

import (
	"time"

	"github.com/Sumatoshi-tech/chatfang/pkg/chat"
)

// Participant accumulates everything observed about one distinct sender.
// The raw sender string acts as identity; name variants are not merged.
type Participant struct {
	ID           string
	Name         string
	Messages     []chat.Message
	MessageCount int
	FirstMessage time.Time
	LastMessage  time.Time
	ActiveHours  map[int]struct{}
	ActiveDays   map[string]struct{}
}

// Timeframes holds four independent message counters at increasing
// granularity. Hourly is keyed by hour-of-day, Daily by ISO calendar date,
// Weekly by ISO-8601 week number and Monthly by YYYY-MM.
type Timeframes struct {
	Hourly  *Counter[int]
	Daily   *Counter[string]
	Weekly  *Counter[int]
	Monthly *Counter[string]
}

// Thread is one conversation grouping: a run of messages without a long
// idle gap between them.
type Thread struct {
	ID           string
	StartMessage chat.Message
	Participants map[string]struct{}
	Messages     []chat.Message
	Duration     time.Duration
	// Intensity is messages per minute over the thread's duration.
	Intensity float64
}

// Interactions approximates who talks to whom. Threads and ResponseTimes
// are populated only when thread segmentation is enabled and may be empty;
// consumers must tolerate that. Mentions and Graph are extracted from
// `@name` tokens in message bodies.
type Interactions struct {
	Threads       []Thread
	ResponseTimes map[string][]float64
	Mentions      map[string][]string
	Graph         map[string]map[string]struct{}
}

// Data is the aggregate root for one analysis run. It is never shared
// across concurrent runs and is rebuilt from scratch for every transcript.
type Data struct {
	Messages     []chat.Message
	Participants map[string]*Participant

	// ParticipantOrder lists participant IDs in first-message order so
	// iteration is deterministic.
	ParticipantOrder []string

	Timeframes   Timeframes
	Interactions Interactions
}

// NewData creates an empty data model.
func NewData() *Data {
	return &Data{
		Participants: make(map[string]*Participant),
		Timeframes: Timeframes{
			Hourly:  NewCounter[int](),
			Daily:   NewCounter[string](),
			Weekly:  NewCounter[int](),
			Monthly: NewCounter[string](),
		},
		Interactions: Interactions{
			ResponseTimes: make(map[string][]float64),
			Mentions:      make(map[string][]string),
			Graph:         make(map[string]map[string]struct{}),
		},
	}
}

// Participant returns the accumulated record for the given sender, nil if
// the sender never appeared.
func (d *Data) Participant(id string) *Participant {
	return d.Participants[id]
}

// TotalMessages returns the number of parsed messages in the model.
func (d *Data) TotalMessages() int {
	return len(d.Messages)
}
