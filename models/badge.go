package models

import "time"

// BadgeCriteriaKind is the closed set of automatic unlock criteria.
// Adding a kind means touching the evaluator switch as well.
type BadgeCriteriaKind string

const (
	CriteriaKills       BadgeCriteriaKind = "kills"
	CriteriaHeadshots   BadgeCriteriaKind = "headshots"
	CriteriaGamesPlayed BadgeCriteriaKind = "games_played"
	CriteriaRank        BadgeCriteriaKind = "rank"
	CriteriaCustom      BadgeCriteriaKind = "custom"
)

// Valid reports whether the kind is one of the known criteria kinds.
func (k BadgeCriteriaKind) Valid() bool {
	switch k {
	case CriteriaKills, CriteriaHeadshots, CriteriaGamesPlayed, CriteriaRank, CriteriaCustom:
		return true
	}
	return false
}

// Badge: static config for a standard, automatically evaluated badge.
type Badge struct {
	ID          string `gorm:"primaryKey;type:uuid" json:"id"`
	Name        string `gorm:"uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	IconURL     string `gorm:"type:text" json:"icon_url"`

	CriteriaKind  BadgeCriteriaKind `gorm:"type:varchar(16);not null" json:"criteria_kind"`
	CriteriaValue int64             `gorm:"default:0" json:"criteria_value"`          // threshold for counter kinds
	CriteriaRank  string            `json:"criteria_rank,omitempty"`                  // target rank name for the rank kind

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// PlayerBadge: awarded instance. Earned once, then immutable — criteria
// are never re-checked against an earned badge.
type PlayerBadge struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	PlayerID  string    `gorm:"not null;uniqueIndex:idx_player_badge" json:"player_id"`
	BadgeID   string    `gorm:"not null;uniqueIndex:idx_player_badge" json:"badge_id"`
	AwardedAt time.Time `json:"awarded_at" gorm:"autoCreateTime"`
}

// LegendaryBadge has no automatic criteria; it is granted and revoked
// only by explicit administrative action.
type LegendaryBadge struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	IconURL     string    `gorm:"type:text" json:"icon_url"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// LegendaryBadgeGrant records one administrative grant.
type LegendaryBadgeGrant struct {
	ID               string    `gorm:"primaryKey;type:uuid" json:"id"`
	PlayerID         string    `gorm:"not null;uniqueIndex:idx_player_legendary" json:"player_id"`
	LegendaryBadgeID string    `gorm:"not null;uniqueIndex:idx_player_legendary" json:"legendary_badge_id"`
	GrantedBy        string    `json:"granted_by,omitempty"`
	GrantedAt        time.Time `json:"granted_at" gorm:"autoCreateTime"`
}
