package services

import (
	"errors"
	"fmt"
	"time"

	"league-ops-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrInvalidCriteria = errors.New("invalid badge criteria")
	ErrDuplicateMinXP  = errors.New("tier min_xp must be unique within its rank")
	ErrNegativeMinXP   = errors.New("tier min_xp must be >= 0")
)

// ConfigService owns the league's static configuration: ranks, tiers,
// badges, gamification rules, rental gear, and manual transactions.
type ConfigService struct {
	DB *gorm.DB
}

func NewConfigService(db *gorm.DB) *ConfigService {
	return &ConfigService{DB: db}
}

// SeedDefaultRules inserts the default gamification rules, leaving any
// admin-tuned rows alone. Safe to run on every boot.
func (s *ConfigService) SeedDefaultRules() error {
	for _, rule := range models.DefaultRules {
		rule.ID = uuid.NewString()
		if err := s.DB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			DoNothing: true,
		}).Create(&rule).Error; err != nil {
			return err
		}
	}
	return nil
}

// --- Ranks & Tiers ---

func (s *ConfigService) CreateRank(r *models.Rank) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	for i := range r.Tiers {
		if r.Tiers[i].ID == "" {
			r.Tiers[i].ID = uuid.NewString()
		}
	}
	if err := validateTierLadder(r.Tiers); err != nil {
		return err
	}
	return s.DB.Create(r).Error
}

func (s *ConfigService) ListRanks() ([]models.Rank, error) {
	var ranks []models.Rank
	err := s.DB.Preload("Tiers", func(db *gorm.DB) *gorm.DB {
		return db.Order("min_xp ASC")
	}).Find(&ranks).Error
	return ranks, err
}

func (s *ConfigService) DeleteRank(id string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("rank_id = ?", id).Delete(&models.Tier{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Rank{}, "id = ?", id).Error
	})
}

// AddTier appends one tier to a rank, keeping the ladder well-ordered.
func (s *ConfigService) AddTier(rankID string, t *models.Tier) error {
	if t.MinXP < 0 {
		return ErrNegativeMinXP
	}
	var siblings []models.Tier
	if err := s.DB.Where("rank_id = ?", rankID).Find(&siblings).Error; err != nil {
		return err
	}
	for _, sib := range siblings {
		if sib.MinXP == t.MinXP {
			return ErrDuplicateMinXP
		}
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	t.RankID = rankID
	return s.DB.Create(t).Error
}

func validateTierLadder(tiers []models.Tier) error {
	seen := make(map[int64]bool, len(tiers))
	for _, t := range tiers {
		if t.MinXP < 0 {
			return ErrNegativeMinXP
		}
		if seen[t.MinXP] {
			return ErrDuplicateMinXP
		}
		seen[t.MinXP] = true
	}
	return nil
}

// --- Badges ---

func (s *ConfigService) CreateBadge(b *models.Badge) error {
	if !b.CriteriaKind.Valid() {
		return ErrInvalidCriteria
	}
	switch b.CriteriaKind {
	case models.CriteriaKills, models.CriteriaHeadshots, models.CriteriaGamesPlayed:
		if b.CriteriaValue <= 0 {
			return ErrInvalidCriteria
		}
	case models.CriteriaRank:
		if b.CriteriaRank == "" {
			return ErrInvalidCriteria
		}
	}
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return s.DB.Create(b).Error
}

func (s *ConfigService) ListBadges() ([]models.Badge, error) {
	var badges []models.Badge
	err := s.DB.Order("name").Find(&badges).Error
	return badges, err
}

func (s *ConfigService) CreateLegendaryBadge(b *models.LegendaryBadge) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return s.DB.Create(b).Error
}

// ValidateBadges reports configuration problems an admin should fix:
// rank badges whose target rank no longer exists (they render as
// permanently non-completable progress bars) and tiers sharing a MinXP
// across ranks (ambiguous resolution).
func (s *ConfigService) ValidateBadges() ([]string, error) {
	var warnings []string

	ranks, err := s.ListRanks()
	if err != nil {
		return nil, err
	}
	known := make(map[string]bool, len(ranks))
	for _, r := range ranks {
		known[r.Name] = true
	}

	var rankBadges []models.Badge
	if err := s.DB.Where("criteria_kind = ?", models.CriteriaRank).Find(&rankBadges).Error; err != nil {
		return nil, err
	}
	for _, b := range rankBadges {
		if !known[b.CriteriaRank] {
			warnings = append(warnings,
				fmt.Sprintf("badge %q targets rank %q which is not configured, so it can never be completed", b.Name, b.CriteriaRank))
		}
	}

	seen := make(map[int64]string)
	for _, r := range ranks {
		for _, t := range r.Tiers {
			if owner, ok := seen[t.MinXP]; ok {
				warnings = append(warnings,
					fmt.Sprintf("tiers %q and %q share min_xp %d, resolution between them is ambiguous", owner, t.Name, t.MinXP))
				continue
			}
			seen[t.MinXP] = t.Name
		}
	}

	return warnings, nil
}

// --- Rules ---

func (s *ConfigService) ListRules() ([]models.GamificationRule, error) {
	var rules []models.GamificationRule
	err := s.DB.Order("code").Find(&rules).Error
	return rules, err
}

func (s *ConfigService) UpdateRule(code string, value int64) (*models.GamificationRule, error) {
	var rule models.GamificationRule
	if err := s.DB.First(&rule, "code = ?", code).Error; err != nil {
		return nil, err
	}
	rule.Value = value
	if err := s.DB.Save(&rule).Error; err != nil {
		return nil, err
	}
	return &rule, nil
}

// --- Gear ---

func (s *ConfigService) CreateGearItem(g *models.GearItem) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	return s.DB.Create(g).Error
}

func (s *ConfigService) ListGear() ([]models.GearItem, error) {
	var gear []models.GearItem
	err := s.DB.Order("name").Find(&gear).Error
	return gear, err
}

// --- Transactions ---

// RecordTransaction is the manual-entry path for expenses and retail
// sales entered by an admin; settlement writes its own entries.
func (s *ConfigService) RecordTransaction(t *models.Transaction) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Date.IsZero() {
		t.Date = time.Now()
	}
	return s.DB.Create(t).Error
}

func (s *ConfigService) ListTransactions(txType models.TransactionType, eventID string, limit int) ([]models.Transaction, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}
	q := s.DB.Order("date DESC").Limit(limit)
	if txType != "" {
		q = q.Where("type = ?", txType)
	}
	if eventID != "" {
		q = q.Where("related_event_id = ?", eventID)
	}
	var txs []models.Transaction
	err := q.Find(&txs).Error
	return txs, err
}
