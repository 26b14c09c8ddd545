package models

import "time"

// Player is the sole source of truth for cumulative XP and lifetime stats.
// The tier columns are a denormalized display cache: they are recomputed
// after every XP mutation and are never authoritative input to other
// computations.
type Player struct {
	ID             string  `gorm:"primaryKey;type:uuid" json:"id"`
	ExternalUserID string  `gorm:"uniqueIndex;not null" json:"external_user_id"` // links to profile service
	Username       string  `gorm:"index;not null" json:"username"`
	AvatarURL      *string `json:"avatar_url,omitempty"`

	// Lifetime stats
	Kills       int64 `json:"kills" gorm:"default:0"`
	Deaths      int64 `json:"deaths" gorm:"default:0"`
	Headshots   int64 `json:"headshots" gorm:"default:0"`
	GamesPlayed int64 `json:"games_played" gorm:"default:0"`
	XP          int64 `json:"xp" gorm:"default:0"`

	// Cached tier, recomputed on every XP write
	TierID   *string `json:"tier_id,omitempty" gorm:"type:uuid;index"`
	TierName string  `json:"tier_name"`
	RankName string  `json:"rank_name"`

	LastRankChangeAt *time.Time `json:"last_rank_change_at,omitempty"`

	Badges          []PlayerBadge         `json:"badges,omitempty" gorm:"foreignKey:PlayerID"`
	LegendaryBadges []LegendaryBadgeGrant `json:"legendary_badges,omitempty" gorm:"foreignKey:PlayerID"`
	XpAdjustments   []XpAdjustment        `json:"xp_adjustments,omitempty" gorm:"foreignKey:PlayerID"`
	MatchHistory    []MatchRecord         `json:"match_history,omitempty" gorm:"foreignKey:PlayerID"`

	Timestamps
}

// HasBadge reports whether the player already holds the given standard badge.
func (p *Player) HasBadge(badgeID string) bool {
	for _, b := range p.Badges {
		if b.BadgeID == badgeID {
			return true
		}
	}
	return false
}

// MatchRecord is an immutable snapshot of one settled event appearance,
// appended to the player's match history at settlement time.
type MatchRecord struct {
	ID         string    `gorm:"primaryKey;type:uuid" json:"id"`
	PlayerID   string    `gorm:"index;not null" json:"player_id"`
	EventID    string    `gorm:"index;not null" json:"event_id"`
	Kills      int64     `json:"kills"`
	Deaths     int64     `json:"deaths"`
	Headshots  int64     `json:"headshots"`
	RecordedAt time.Time `json:"recorded_at" gorm:"autoCreateTime"`
}

// XpAdjustment is one immutable manual ledger entry. The reason is
// mandatory and user-visible.
type XpAdjustment struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	PlayerID  string    `gorm:"index;not null" json:"player_id"`
	Amount    int64     `gorm:"not null" json:"amount"`
	Reason    string    `gorm:"type:text;not null" json:"reason"`
	AppliedBy string    `json:"applied_by,omitempty"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}
