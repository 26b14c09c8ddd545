package services

import (
	"errors"
	"fmt"
	"time"

	"league-ops-system/engine"
	"league-ops-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrBadgeAlreadyHeld = errors.New("player already holds this badge")
	ErrNotAdminAwarded  = errors.New("only custom-criteria badges can be awarded by hand")
)

type PlayerService struct {
	DB *gorm.DB
}

func NewPlayerService(db *gorm.DB) *PlayerService {
	return &PlayerService{DB: db}
}

// loadRanks returns the configured ranks with tiers preloaded. Ordering
// is the engine's concern.
func (s *PlayerService) loadRanks() ([]models.Rank, error) {
	var ranks []models.Rank
	err := s.DB.Preload("Tiers").Find(&ranks).Error
	return ranks, err
}

// BadgeStatus pairs a badge config with the player's progress toward it.
type BadgeStatus struct {
	Badge    models.Badge         `json:"badge"`
	Progress engine.BadgeProgress `json:"progress"`
}

// PlayerProgress is the display read model for a player's profile page.
type PlayerProgress struct {
	Player *models.Player        `json:"player"`
	Tier   engine.TierResolution `json:"tier"`
	Badges []BadgeStatus         `json:"badges"`
}

// GetProgress resolves the player's live tier and per-badge progress.
// The resolution here is recomputed, not read from the cached columns.
func (s *PlayerService) GetProgress(playerID string) (*PlayerProgress, error) {
	var p models.Player
	if err := s.DB.Preload("Badges").Preload("LegendaryBadges").
		First(&p, "id = ?", playerID).Error; err != nil {
		return nil, err
	}

	ranks, err := s.loadRanks()
	if err != nil {
		return nil, err
	}

	var badges []models.Badge
	if err := s.DB.Order("name").Find(&badges).Error; err != nil {
		return nil, err
	}

	progress := &PlayerProgress{
		Player: &p,
		Tier:   engine.ResolveTier(p.XP, ranks),
	}
	for _, b := range badges {
		progress.Badges = append(progress.Badges, BadgeStatus{
			Badge:    b,
			Progress: engine.EvaluateBadge(b, &p, ranks),
		})
	}
	return progress, nil
}

// AdjustXP applies one manual ledger entry and persists the player's XP,
// tier cache, and the new adjustment row atomically.
func (s *PlayerService) AdjustXP(playerID string, amount int64, reason, appliedBy string) (*models.Player, error) {
	ranks, err := s.loadRanks()
	if err != nil {
		return nil, err
	}

	var updated *models.Player
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		var p models.Player
		if err := tx.Preload("XpAdjustments").First(&p, "id = ?", playerID).Error; err != nil {
			return err
		}

		adj, err := engine.ApplyAdjustment(&p, amount, reason, ranks, time.Now())
		if err != nil {
			return err
		}
		adj.AppliedBy = appliedBy

		if err := tx.Create(adj).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Player{}).Where("id = ?", p.ID).
			Updates(map[string]interface{}{
				"xp":                  p.XP,
				"tier_id":             p.TierID,
				"tier_name":           p.TierName,
				"rank_name":           p.RankName,
				"last_rank_change_at": p.LastRankChangeAt,
			}).Error; err != nil {
			return err
		}

		updated = &p
		return nil
	})
	if err != nil {
		return nil, err
	}

	fmt.Printf("🎮 XP Adjusted: %s %+d → XP=%d, Tier=%s (reason: %s)\n",
		updated.Username, amount, updated.XP, updated.TierName, reason)
	return updated, nil
}

// AwardBadge hand-awards a custom-criteria badge. Counter and rank
// badges are only ever awarded by settlement.
func (s *PlayerService) AwardBadge(playerID, badgeID string) (*models.PlayerBadge, error) {
	var badge models.Badge
	if err := s.DB.First(&badge, "id = ?", badgeID).Error; err != nil {
		return nil, err
	}
	if badge.CriteriaKind != models.CriteriaCustom {
		return nil, ErrNotAdminAwarded
	}

	var count int64
	s.DB.Model(&models.PlayerBadge{}).
		Where("player_id = ? AND badge_id = ?", playerID, badgeID).
		Count(&count)
	if count > 0 {
		return nil, ErrBadgeAlreadyHeld
	}

	pb := models.PlayerBadge{
		ID:       uuid.NewString(),
		PlayerID: playerID,
		BadgeID:  badgeID,
	}
	if err := s.DB.Create(&pb).Error; err != nil {
		return nil, err
	}
	return &pb, nil
}

// GrantLegendaryBadge records an administrative grant. No criteria are
// involved; revocation is the only way a grant goes away.
func (s *PlayerService) GrantLegendaryBadge(playerID, legendaryBadgeID, grantedBy string) (*models.LegendaryBadgeGrant, error) {
	var count int64
	s.DB.Model(&models.LegendaryBadgeGrant{}).
		Where("player_id = ? AND legendary_badge_id = ?", playerID, legendaryBadgeID).
		Count(&count)
	if count > 0 {
		return nil, ErrBadgeAlreadyHeld
	}

	grant := models.LegendaryBadgeGrant{
		ID:               uuid.NewString(),
		PlayerID:         playerID,
		LegendaryBadgeID: legendaryBadgeID,
		GrantedBy:        grantedBy,
	}
	if err := s.DB.Create(&grant).Error; err != nil {
		return nil, err
	}
	fmt.Printf("🎖️ Legendary badge granted: %s → player %s\n", legendaryBadgeID, playerID)
	return &grant, nil
}

func (s *PlayerService) RevokeLegendaryBadge(playerID, legendaryBadgeID string) error {
	res := s.DB.Where("player_id = ? AND legendary_badge_id = ?", playerID, legendaryBadgeID).
		Delete(&models.LegendaryBadgeGrant{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetMatchHistory returns the player's permanent match records, newest
// first.
func (s *PlayerService) GetMatchHistory(playerID string, limit int) ([]models.MatchRecord, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	var records []models.MatchRecord
	err := s.DB.Where("player_id = ?", playerID).
		Order("recorded_at DESC").
		Limit(limit).
		Find(&records).Error
	return records, err
}

// GetAdjustments returns the player's manual XP ledger, newest first.
func (s *PlayerService) GetAdjustments(playerID string, limit int) ([]models.XpAdjustment, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	var adjustments []models.XpAdjustment
	err := s.DB.Where("player_id = ?", playerID).
		Order("created_at DESC").
		Limit(limit).
		Find(&adjustments).Error
	return adjustments, err
}
