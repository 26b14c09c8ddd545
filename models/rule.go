package models

// Rule codes consumed by event settlement scoring. Events may override
// individual values for themselves via Event.XPOverrides.
const (
	RuleBaseParticipation = "base_participation"
	RuleKill              = "kill"
	RuleHeadshot          = "headshot"
	RuleDeathPenalty      = "death_penalty"
	RuleNoShowPenalty     = "no_show_penalty"
)

// GamificationRule is a named, signed XP modifier.
type GamificationRule struct {
	ID    string `gorm:"primaryKey;type:uuid" json:"id"`
	Code  string `gorm:"uniqueIndex;not null" json:"code"`
	Name  string `gorm:"not null" json:"name"`
	Value int64  `gorm:"not null;default:0" json:"value"`

	Timestamps
}

// DefaultRules seed the rule table on first boot; admins tune them later.
var DefaultRules = []GamificationRule{
	{
		Code:  RuleBaseParticipation,
		Name:  "Base Participation",
		Value: 50,
	},
	{
		Code:  RuleKill,
		Name:  "Per Kill",
		Value: 10,
	},
	{
		Code:  RuleHeadshot,
		Name:  "Per Headshot",
		Value: 5,
	},
	{
		Code:  RuleDeathPenalty,
		Name:  "Death Penalty",
		Value: -2,
	},
	{
		Code:  RuleNoShowPenalty,
		Name:  "No-Show Penalty",
		Value: -25,
	},
}
