package personality_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/chatfang/pkg/analytics"
	"github.com/Sumatoshi-tech/chatfang/pkg/processors/personality"
)

func buildData(t *testing.T, opts analytics.Options, lines ...string) *analytics.Data {
	t.Helper()

	return analytics.NewBuilder(opts).Build(strings.Join(lines, "\n"))
}

func processProfiles(t *testing.T, data *analytics.Data) personality.Profiles {
	t.Helper()

	result, err := personality.NewProcessor().Process(context.Background(), data)
	require.NoError(t, err)
	require.Equal(t, personality.Type, result.Type)

	profiles, ok := result.Data.(personality.Profiles)
	require.True(t, ok)

	return profiles
}

func TestProcessorDeclaresBasicDependency(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"basic"}, personality.NewProcessor().Dependencies())
}

func TestProfilePerParticipant(t *testing.T) {
	t.Parallel()

	data := buildData(t, analytics.Options{},
		"01/01/24, 09:00 - Alice: Good morning!",
		"01/01/24, 23:30 - Bob: still up 😀",
		"02/01/24, 09:05 - Alice: back again",
	)

	profiles := processProfiles(t, data)
	require.Len(t, profiles, 2)

	alice, ok := profiles["Alice"]
	require.True(t, ok)

	assert.Equal(t, 2, alice.ActivityMetrics.Hourly[9])
	assert.Zero(t, alice.ActivityMetrics.Hourly[23])
	assert.Equal(t, 2, hourlySum(alice.ActivityMetrics))
	assert.NotEmpty(t, alice.Traits.ActivityPattern)
	assert.NotEmpty(t, alice.Traits.CommunicationStyle)
	assert.NotEmpty(t, alice.Traits.GroupRole)
	assert.InDelta(t, 66.67, alice.InteractionMetrics.ConversationImpact, 0.01)

	bob, ok := profiles["Bob"]
	require.True(t, ok)

	assert.Equal(t, 1, bob.ActivityMetrics.Hourly[23])
	assert.Equal(t, 1, hourlySum(bob.ActivityMetrics))
	assert.InDelta(t, 100.0, bob.ActivityMetrics.Periods.Night, 0.001)
}

// hourlySum totals a participant's hourly distribution; it must equal
// their message count.
func hourlySum(m personality.ActivityMetrics) int {
	total := 0
	for _, count := range m.Hourly {
		total += count
	}

	return total
}

func TestCharacterClassNightGuardian(t *testing.T) {
	t.Parallel()

	data := buildData(t, analytics.Options{},
		"01/01/24, 23:00 - Alice: one",
		"01/01/24, 23:10 - Alice: two",
		"02/01/24, 09:00 - Alice: three",
	)

	profile := processProfiles(t, data)["Alice"]

	assert.Equal(t, personality.ClassNightGuardian, profile.CharacterClass.ID)
	assert.Contains(t, profile.SpecialAbilities, "Night Warrior")
}

func TestCharacterClassEmojiWizard(t *testing.T) {
	t.Parallel()

	data := buildData(t, analytics.Options{},
		"01/01/24, 09:00 - Alice: hello 😀",
		"01/01/24, 09:05 - Alice: more 🎉",
		"01/01/24, 09:10 - Alice: plain",
		"01/01/24, 09:15 - Alice: plain again",
	)

	profile := processProfiles(t, data)["Alice"]

	assert.Equal(t, personality.ClassEmojiWizard, profile.CharacterClass.ID)
	assert.Contains(t, profile.SpecialAbilities, "Emoji Enthusiast")
}

func TestCharacterClassDefaultsToSocialButterfly(t *testing.T) {
	t.Parallel()

	data := buildData(t, analytics.Options{},
		"01/01/24, 09:00 - Alice: a calm daytime message",
		"01/01/24, 10:00 - Alice: and another one",
	)

	profile := processProfiles(t, data)["Alice"]

	assert.Equal(t, personality.ClassSocialButterfly, profile.CharacterClass.ID)
	assert.Equal(t, personality.RarityRare, profile.CharacterClass.Rarity)
}

func TestClassPriorityNightBeatsEmoji(t *testing.T) {
	t.Parallel()

	// Every message is late-night and carries emoji; the night rule is
	// checked first.
	data := buildData(t, analytics.Options{},
		"01/01/24, 23:00 - Alice: hi 😀",
		"01/01/24, 23:30 - Alice: still here 🎉",
	)

	profile := processProfiles(t, data)["Alice"]

	assert.Equal(t, personality.ClassNightGuardian, profile.CharacterClass.ID)
}

func TestAchievementProgressBounds(t *testing.T) {
	t.Parallel()

	data := buildData(t, analytics.Options{},
		"01/01/24, 09:00 - Alice: hello 😀",
		"01/01/24, 23:30 - Alice: night note",
		"02/01/24, 02:00 - Alice: deep night",
	)

	profile := processProfiles(t, data)["Alice"]
	require.Len(t, profile.Achievements, 5)

	for _, a := range profile.Achievements {
		assert.GreaterOrEqual(t, a.Progress, 0, a.ID)
		assert.LessOrEqual(t, a.Progress, 100, a.ID)

		if a.Progress < 100 {
			assert.Nil(t, a.UnlockedAt, a.ID)
		}
	}
}

func TestChatterboxProgressAndUnlock(t *testing.T) {
	t.Parallel()

	lines := make([]string, 0, 100)
	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	for i := range 100 {
		at := base.Add(time.Duration(i) * time.Minute)
		lines = append(lines, fmt.Sprintf("01/01/24, %02d:%02d - Alice: message %d", at.Hour(), at.Minute(), i))
	}

	profiles := processProfiles(t, buildData(t, analytics.Options{}, lines...))
	profile := profiles["Alice"]

	var chatterbox *personality.Achievement
	for i := range profile.Achievements {
		if profile.Achievements[i].ID == personality.AchievementChatterbox {
			chatterbox = &profile.Achievements[i]
		}
	}

	require.NotNil(t, chatterbox)
	assert.Equal(t, 100, chatterbox.Progress)
	assert.NotNil(t, chatterbox.UnlockedAt)
}

func TestToleratesEmptyThreadsAndResponseTimes(t *testing.T) {
	t.Parallel()

	// Threads disabled: interaction inputs stay empty and the profile
	// must still come out whole.
	data := buildData(t, analytics.Options{},
		"01/01/24, 09:00 - Alice: hello",
		"01/01/24, 09:01 - Bob: hi",
	)

	require.Empty(t, data.Interactions.Threads)

	profiles := processProfiles(t, data)

	alice := profiles["Alice"]
	assert.Zero(t, alice.InteractionMetrics.InitiationRate)
	assert.Zero(t, alice.InteractionMetrics.ResponseRate)
	assert.Zero(t, alice.Metrics.ResponseTime)
	assert.NotContains(t, alice.SpecialAbilities, "Quick Responder")
}

func TestInitiationRateWithThreads(t *testing.T) {
	t.Parallel()

	data := buildData(t, analytics.Options{ThreadGap: 30 * time.Minute},
		"01/01/24, 09:00 - Alice: first thread",
		"01/01/24, 09:01 - Bob: reply",
		"01/01/24, 12:00 - Alice: second thread",
		"01/01/24, 12:01 - Bob: reply again",
	)

	require.Len(t, data.Interactions.Threads, 2)

	profiles := processProfiles(t, data)

	assert.InDelta(t, 100.0, profiles["Alice"].InteractionMetrics.InitiationRate, 0.001)
	assert.Zero(t, profiles["Bob"].InteractionMetrics.InitiationRate)
	assert.Contains(t, profiles["Alice"].SpecialAbilities, "Conversation Starter")
	assert.Contains(t, profiles["Bob"].SpecialAbilities, "Quick Responder")
}

func TestHighlightsMostActiveDay(t *testing.T) {
	t.Parallel()

	data := buildData(t, analytics.Options{},
		"01/01/24, 09:00 - Alice: one",
		"02/01/24, 09:00 - Alice: two",
		"02/01/24, 10:00 - Alice: three",
	)

	profile := processProfiles(t, data)["Alice"]
	require.Len(t, profile.Highlights, 1)

	highlight := profile.Highlights[0]
	assert.Equal(t, "moment", highlight.Type)
	assert.Contains(t, highlight.Description, "2024-01-02")
	assert.Contains(t, highlight.Description, "2 messages")
	assert.GreaterOrEqual(t, highlight.Impact, 0)
	assert.LessOrEqual(t, highlight.Impact, 100)
}

func TestPeriodActivitySumsToFull(t *testing.T) {
	t.Parallel()

	data := buildData(t, analytics.Options{},
		"01/01/24, 06:00 - Alice: morning",
		"01/01/24, 13:00 - Alice: afternoon",
		"01/01/24, 19:00 - Alice: evening",
		"01/01/24, 23:00 - Alice: night",
	)

	periods := processProfiles(t, data)["Alice"].ActivityMetrics.Periods

	assert.InDelta(t, 25.0, periods.Morning, 0.001)
	assert.InDelta(t, 25.0, periods.Afternoon, 0.001)
	assert.InDelta(t, 25.0, periods.Evening, 0.001)
	assert.InDelta(t, 25.0, periods.Night, 0.001)
}

func TestCommunicationMetrics(t *testing.T) {
	t.Parallel()

	data := buildData(t, analytics.Options{},
		"01/01/24, 09:00 - Alice: abcd",
		"01/01/24, 09:01 - Alice: ab",
		"01/01/24, 09:02 - Alice: <Media omitted>",
	)

	comm := processProfiles(t, data)["Alice"].CommunicationMetrics

	assert.Greater(t, comm.AverageMessageLength, 0.0)
	assert.Greater(t, comm.MessageVariability, 0.0)
	assert.InDelta(t, 33.33, comm.MediaSharing, 0.01)
	assert.Zero(t, comm.EmojiUsage.Frequency)
	assert.Empty(t, comm.EmojiUsage.Favorites)
}

func TestFavoriteEmojiTopFive(t *testing.T) {
	t.Parallel()

	data := buildData(t, analytics.Options{},
		"01/01/24, 09:00 - Alice: 😀😀😀 🎉🎉 ✨ 🌙 🦉 🎭 🎯",
	)

	favorites := processProfiles(t, data)["Alice"].CommunicationMetrics.EmojiUsage.Favorites
	require.Len(t, favorites, 5)

	assert.Equal(t, personality.EmojiCount{Emoji: "😀", Count: 3}, favorites[0])
	assert.Equal(t, personality.EmojiCount{Emoji: "🎉", Count: 2}, favorites[1])

	for i := 1; i < len(favorites); i++ {
		assert.LessOrEqual(t, favorites[i].Count, favorites[i-1].Count)
	}
}

func TestProfileDoesNotMutateData(t *testing.T) {
	t.Parallel()

	data := buildData(t, analytics.Options{},
		"01/01/24, 09:00 - Alice: hello",
		"01/01/24, 09:01 - Bob: hi",
	)

	before := data.TotalMessages()
	participantsBefore := len(data.Participants)

	first := processProfiles(t, data)
	second := processProfiles(t, data)

	assert.Equal(t, before, data.TotalMessages())
	assert.Equal(t, participantsBefore, len(data.Participants))
	assert.Equal(t, first["Alice"].Metrics, second["Alice"].Metrics)
}
