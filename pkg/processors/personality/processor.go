package personality

import (
	"context"
	"fmt"
	"time"

	"github.com/Sumatoshi-tech/chatfang/pkg/analytics"
	"github.com/Sumatoshi-tech/chatfang/pkg/chat"
	"github.com/Sumatoshi-tech/chatfang/pkg/mathutil"
	"github.com/Sumatoshi-tech/chatfang/pkg/processors"
)

// Type is the processor type name.
const Type = "personality"

// basicType is the processor this one is ordered after.
const basicType = "basic"

// Class rule thresholds, all percentages.
const (
	nightClassThreshold      = 30.0
	emojiClassThreshold      = 40.0
	mediaClassThreshold      = 30.0
	sageLengthThreshold      = 100.0
	initiationClassThreshold = 30.0
)

// Ability and trait thresholds.
const (
	engagementAbilityThreshold  = 80.0
	consistencyAbilityThreshold = 70.0
	quickResponseSeconds        = 120.0

	nightOwlTraitThreshold  = 20.0
	earlyBirdTraitThreshold = 15.0
	detailedLengthThreshold = 100.0
	expressiveThreshold     = 30.0
	conciseLengthThreshold  = 20.0
	leaderInitiationRate    = 30.0
)

// Achievement thresholds.
const (
	chatterboxTarget   = 100
	speedDemonTarget   = 100
	nightOwlTarget     = 1000
	emojiMasterTarget  = 100
	starterTarget      = 50
	fastResponseWindow = 30.0
)

// Traits are the three human-readable classification strings on a profile.
type Traits struct {
	ActivityPattern    string `json:"activityPattern"`
	CommunicationStyle string `json:"communicationStyle"`
	GroupRole          string `json:"groupRole"`
}

// Achievement is one catalog milestone evaluated for a participant.
type Achievement struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
	Rarity      Rarity `json:"rarity"`

	// Progress toward the unlock threshold, 0 through 100.
	Progress int `json:"progress"`

	// UnlockedAt is set once Progress reaches 100.
	UnlockedAt *time.Time `json:"unlockedAt,omitempty"`
}

// Highlight is a notable moment on a participant's profile.
type Highlight struct {
	Type        string    `json:"type"`
	Timestamp   time.Time `json:"timestamp"`
	Description string    `json:"description"`
	Context     string    `json:"context,omitempty"`

	// Impact scores the moment from 0 to 100.
	Impact int `json:"impact"`
}

// Profile is the full derived personality of one participant.
type Profile struct {
	CharacterClass       ClassDescriptor      `json:"characterClass"`
	Traits               Traits               `json:"traits"`
	Metrics              SummaryMetrics       `json:"metrics"`
	SpecialAbilities     []string             `json:"specialAbilities"`
	Achievements         []Achievement        `json:"achievements"`
	ActivityMetrics      ActivityMetrics      `json:"activityMetrics"`
	CommunicationMetrics CommunicationMetrics `json:"communicationMetrics"`
	InteractionMetrics   InteractionMetrics   `json:"interactionMetrics"`
	Highlights           []Highlight          `json:"highlights"`
}

// Profiles maps participant id to derived profile.
type Profiles map[string]Profile

// Kind implements processors.Payload.
func (Profiles) Kind() string { return Type }

// Processor derives personality profiles. It is stateless and safe to
// reuse across runs.
type Processor struct{}

// NewProcessor creates a personality processor.
func NewProcessor() *Processor {
	return &Processor{}
}

// Type implements processors.Processor.
func (p *Processor) Type() string { return Type }

// Dependencies implements processors.Processor.
func (p *Processor) Dependencies() []string { return []string{basicType} }

// Process derives one profile per participant. Each profile is a pure
// function of that participant's messages plus the shared data for
// cross-participant ratios; nothing in the data model is mutated.
func (p *Processor) Process(_ context.Context, data *analytics.Data) (processors.Result, error) {
	now := time.Now()

	profiles := make(Profiles, len(data.Participants))
	for _, id := range data.ParticipantOrder {
		profiles[id] = buildProfile(data.Participant(id), data, now)
	}

	return processors.NewResult(profiles), nil
}

// Update implements processors.Processor by recomputing from scratch.
func (p *Processor) Update(ctx context.Context, data *analytics.Data) (processors.Result, error) {
	return p.Process(ctx, data)
}

func buildProfile(participant *analytics.Participant, data *analytics.Data, now time.Time) Profile {
	activity := activityMetrics(participant)
	comm := communicationMetrics(participant)
	interaction := interactionMetrics(participant, data)
	summary := summaryMetrics(participant, data, comm)

	return Profile{
		CharacterClass:       characterClass(activity, comm, interaction),
		Traits:               deriveTraits(activity, comm, interaction, summary, participant),
		Metrics:              summary,
		SpecialAbilities:     specialAbilities(activity, comm, interaction, summary, participant),
		Achievements:         evaluateAchievements(participant, data, now),
		ActivityMetrics:      activity,
		CommunicationMetrics: comm,
		InteractionMetrics:   interaction,
		Highlights:           highlights(participant),
	}
}

// characterClass picks exactly one class. Rules are checked in a fixed
// priority order and the first match wins.
func characterClass(activity ActivityMetrics, comm CommunicationMetrics, interaction InteractionMetrics) ClassDescriptor {
	id := ClassSocialButterfly

	switch {
	case activity.Periods.Night > nightClassThreshold:
		id = ClassNightGuardian
	case comm.EmojiUsage.Frequency > emojiClassThreshold:
		id = ClassEmojiWizard
	case comm.MediaSharing > mediaClassThreshold:
		id = ClassMemeLord
	case comm.AverageMessageLength > sageLengthThreshold:
		id = ClassSageAdvisor
	case interaction.InitiationRate > initiationClassThreshold:
		id = ClassConversationCatalyst
	}

	desc, _ := Class(id)

	return desc
}

func deriveTraits(
	activity ActivityMetrics,
	comm CommunicationMetrics,
	interaction InteractionMetrics,
	summary SummaryMetrics,
	participant *analytics.Participant,
) Traits {
	return Traits{
		ActivityPattern:    activityPattern(activity, participant),
		CommunicationStyle: communicationStyle(comm),
		GroupRole:          groupRole(interaction, summary, participant),
	}
}

func activityPattern(activity ActivityMetrics, participant *analytics.Participant) string {
	day := 0
	evening := 0

	for hour := 11; hour <= 17; hour++ {
		day += activity.Hourly[hour]
	}

	for hour := 18; hour <= 21; hour++ {
		evening += activity.Hourly[hour]
	}

	morning := 0
	for hour := morningStart; hour <= morningEnd; hour++ {
		morning += activity.Hourly[hour]
	}

	switch {
	case activity.Periods.Night > nightOwlTraitThreshold:
		return "Night Owl"
	case mathutil.Percent(morning, participant.MessageCount) > earlyBirdTraitThreshold:
		return "Early Bird"
	case day > evening:
		return "Day Hawk"
	default:
		return "Evening Person"
	}
}

func communicationStyle(comm CommunicationMetrics) string {
	switch {
	case comm.AverageMessageLength > detailedLengthThreshold:
		return "Detailed Communicator"
	case comm.EmojiUsage.Frequency > expressiveThreshold:
		return "Expressive Communicator"
	case comm.AverageMessageLength < conciseLengthThreshold:
		return "Concise Communicator"
	default:
		return "Balanced Communicator"
	}
}

func groupRole(interaction InteractionMetrics, summary SummaryMetrics, participant *analytics.Participant) string {
	responded := len(participant.Messages) > 0 && summary.ResponseTime > 0

	switch {
	case interaction.InitiationRate > leaderInitiationRate:
		return "Leader"
	case summary.SocialConnection > engagementAbilityThreshold:
		return "Connector"
	case responded && summary.ResponseTime < quickResponseSeconds:
		return "Responder"
	case summary.MessageLength > detailedLengthThreshold:
		return "Contributor"
	default:
		return "Supporter"
	}
}

func specialAbilities(
	activity ActivityMetrics,
	comm CommunicationMetrics,
	interaction InteractionMetrics,
	summary SummaryMetrics,
	participant *analytics.Participant,
) []string {
	abilities := []string{}

	if activity.Periods.Night > nightClassThreshold {
		abilities = append(abilities, "Night Warrior")
	}

	if comm.EmojiUsage.Frequency > emojiClassThreshold {
		abilities = append(abilities, "Emoji Enthusiast")
	}

	if interaction.InitiationRate > initiationClassThreshold {
		abilities = append(abilities, "Conversation Starter")
	}

	if interaction.EngagementScore > engagementAbilityThreshold {
		abilities = append(abilities, "Social Connector")
	}

	if summary.ActivityConsistency > consistencyAbilityThreshold {
		abilities = append(abilities, "Consistent Contributor")
	}

	if summary.ResponseTime > 0 && summary.ResponseTime < quickResponseSeconds {
		abilities = append(abilities, "Quick Responder")
	}

	return abilities
}

// evaluateAchievements scores every catalog achievement for the
// participant. Progress is clamped to [0, 100]; the unlock time is set
// only when the full threshold is reached.
func evaluateAchievements(participant *analytics.Participant, data *analytics.Data, now time.Time) []Achievement {
	nightMessages := 0
	distinctEmoji := make(map[string]struct{})

	for _, msg := range participant.Messages {
		if hour := msg.Hour(); hour >= 0 && hour < morningStart {
			nightMessages++
		}

		if msg.Metadata.HasEmoji {
			for _, emoji := range chat.ExtractEmoji(msg.Content) {
				distinctEmoji[emoji] = struct{}{}
			}
		}
	}

	fastResponses := 0
	for _, latency := range data.Interactions.ResponseTimes[participant.ID] {
		if latency <= fastResponseWindow {
			fastResponses++
		}
	}

	started := threadsStartedBy(participant.ID, data.Interactions.Threads)

	return []Achievement{
		achievement(AchievementChatterbox, participant.MessageCount, chatterboxTarget, now),
		achievement(AchievementSpeedDemon, fastResponses, speedDemonTarget, now),
		achievement(AchievementNightOwl, nightMessages, nightOwlTarget, now),
		achievement(AchievementEmojiMaster, len(distinctEmoji), emojiMasterTarget, now),
		achievement(AchievementConversationStarter, started, starterTarget, now),
	}
}

func achievement(id string, count, target int, now time.Time) Achievement {
	desc, _ := AchievementInfo(id)

	progress := int(mathutil.ClampPercent(float64(count) / float64(target) * 100))

	unlocked := Achievement{
		ID:          desc.ID,
		Name:        desc.Name,
		Icon:        desc.Icon,
		Description: desc.Description,
		Rarity:      desc.Rarity,
		Progress:    progress,
	}

	if count >= target {
		at := now
		unlocked.UnlockedAt = &at
	}

	return unlocked
}

// highlights returns at least the participant's busiest calendar day.
// Impact is that day's share of the participant's messages.
func highlights(participant *analytics.Participant) []Highlight {
	if participant.MessageCount == 0 {
		return nil
	}

	date, count, at := mostActiveDay(participant)

	return []Highlight{{
		Type:        "moment",
		Timestamp:   at,
		Description: fmt.Sprintf("Most active day: %s (%d messages)", date, count),
		Context:     participant.Name,
		Impact:      int(mathutil.ClampPercent(mathutil.Percent(count, participant.MessageCount))),
	}}
}
