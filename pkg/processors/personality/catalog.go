// Package personality derives per-participant gamified profiles from the
// shared analytics data: a character class picked by rule from a static
// catalog, human-readable traits, activity and communication metrics,
// achievements with progress, unlocked abilities and notable highlights.
// It depends on the basic processor for ordering only.
package personality

// Rarity grades catalog entries.
type Rarity string

// Rarity grades, lowest to highest.
const (
	RarityCommon    Rarity = "Common"
	RarityRare      Rarity = "Rare"
	RarityEpic      Rarity = "Epic"
	RarityLegendary Rarity = "Legendary"
)

// ClassDescriptor is one character class in the static catalog.
type ClassDescriptor struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Rarity      Rarity `json:"rarity"`
}

// AchievementDescriptor is one achievement in the static catalog. Progress
// and unlock time live on the per-participant Achievement, not here.
type AchievementDescriptor struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
	Rarity      Rarity `json:"rarity"`
}

// Character class ids.
const (
	ClassMemeLord             = "meme-lord"
	ClassNightGuardian        = "night-guardian"
	ClassConversationCatalyst = "conversation-catalyst"
	ClassEmojiWizard          = "emoji-wizard"
	ClassSageAdvisor          = "sage-advisor"
	ClassSocialButterfly      = "social-butterfly"
)

// Achievement ids.
const (
	AchievementChatterbox          = "chatterbox"
	AchievementSpeedDemon          = "speed-demon"
	AchievementNightOwl            = "night-owl"
	AchievementEmojiMaster         = "emoji-master"
	AchievementConversationStarter = "conversation-starter"
)

// characterClasses is the static class catalog, keyed by id.
var characterClasses = map[string]ClassDescriptor{
	ClassMemeLord: {
		ID:          ClassMemeLord,
		Name:        "Meme Lord",
		Icon:        "👑",
		Description: "Master of internet culture, speaks fluently in GIFs and emojis",
		Color:       "#FFD700",
		Rarity:      RarityLegendary,
	},
	ClassNightGuardian: {
		ID:          ClassNightGuardian,
		Name:        "Night Guardian",
		Icon:        "🌙",
		Description: "Protector of late-night conversations",
		Color:       "#4A90E2",
		Rarity:      RarityEpic,
	},
	ClassConversationCatalyst: {
		ID:          ClassConversationCatalyst,
		Name:        "Conversation Catalyst",
		Icon:        "⚡",
		Description: "Sparks engaging discussions out of thin air",
		Color:       "#FF6B6B",
		Rarity:      RarityRare,
	},
	ClassEmojiWizard: {
		ID:          ClassEmojiWizard,
		Name:        "Emoji Wizard",
		Icon:        "✨",
		Description: "Communicates complex ideas through emojis alone",
		Color:       "#50E3C2",
		Rarity:      RarityEpic,
	},
	ClassSageAdvisor: {
		ID:          ClassSageAdvisor,
		Name:        "Sage Advisor",
		Icon:        "🧙",
		Description: "Provides wisdom and guidance to the group",
		Color:       "#9B51E0",
		Rarity:      RarityLegendary,
	},
	ClassSocialButterfly: {
		ID:          ClassSocialButterfly,
		Name:        "Social Butterfly",
		Icon:        "🦋",
		Description: "Connects with everyone, keeps conversations flowing",
		Color:       "#FF9A9E",
		Rarity:      RarityRare,
	},
}

// achievementCatalog is the static achievement catalog, keyed by id.
var achievementCatalog = map[string]AchievementDescriptor{
	AchievementChatterbox: {
		ID:          AchievementChatterbox,
		Name:        "Chatterbox",
		Icon:        "💬",
		Description: "Sent 100 messages",
		Rarity:      RarityCommon,
	},
	AchievementSpeedDemon: {
		ID:          AchievementSpeedDemon,
		Name:        "Speed Demon",
		Icon:        "⚡",
		Description: "Responded to 100 messages within 30 seconds",
		Rarity:      RarityEpic,
	},
	AchievementNightOwl: {
		ID:          AchievementNightOwl,
		Name:        "Night Owl",
		Icon:        "🦉",
		Description: "Sent 1000 messages between midnight and 5 AM",
		Rarity:      RarityRare,
	},
	AchievementEmojiMaster: {
		ID:          AchievementEmojiMaster,
		Name:        "Emoji Master",
		Icon:        "🎭",
		Description: "Used over 100 different emojis",
		Rarity:      RarityEpic,
	},
	AchievementConversationStarter: {
		ID:          AchievementConversationStarter,
		Name:        "Conversation Starter",
		Icon:        "🎯",
		Description: "Started 50 active discussions",
		Rarity:      RarityCommon,
	},
}

// Class returns the catalog descriptor for a class id.
func Class(id string) (ClassDescriptor, bool) {
	desc, ok := characterClasses[id]

	return desc, ok
}

// AchievementInfo returns the catalog descriptor for an achievement id.
func AchievementInfo(id string) (AchievementDescriptor, bool) {
	desc, ok := achievementCatalog[id]

	return desc, ok
}
