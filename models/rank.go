package models

import "math"

// Rank is a named group of ordered Tiers (e.g., "Veteran" holding I–V).
// Ranks order themselves by the minimum XP of their lowest Tier.
type Rank struct {
	ID           string `gorm:"primaryKey;type:uuid" json:"id"`
	Name         string `gorm:"uniqueIndex;not null" json:"name"`
	Description  string `gorm:"type:text" json:"description"`
	BadgeIconURL string `gorm:"type:text" json:"badge_icon_url"`

	Tiers []Tier `json:"tiers,omitempty" gorm:"foreignKey:RankID"`

	Timestamps
}

// Tier is the finest-grained rank level, gated by a minimum XP threshold.
// Within one Rank the MinXP values must be unique and strictly increasing.
type Tier struct {
	ID      string     `gorm:"primaryKey;type:uuid" json:"id"`
	RankID  string     `gorm:"index;not null" json:"rank_id"`
	Name    string     `gorm:"not null" json:"name"`
	MinXP   int64      `gorm:"not null;default:0;check:min_xp >= 0" json:"min_xp"`
	Perks   StringList `gorm:"type:jsonb" json:"perks,omitempty"`
	IconURL string     `gorm:"type:text" json:"icon_url"`
}

// UnrankedTier is the sentinel returned whenever no tiers are configured.
func UnrankedTier() Tier {
	return Tier{Name: "Unranked", MinXP: 0}
}

// MinTierXP returns the MinXP of the rank's lowest tier. Ranks without
// tiers sort after every configured rank.
func (r Rank) MinTierXP() int64 {
	if len(r.Tiers) == 0 {
		return math.MaxInt64
	}
	min := r.Tiers[0].MinXP
	for _, t := range r.Tiers[1:] {
		if t.MinXP < min {
			min = t.MinXP
		}
	}
	return min
}
