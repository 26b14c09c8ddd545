package services

import (
	"testing"

	"league-ops-system/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory sqlite database with the full schema.
// Each test gets its own database, so there is no cross-test state.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Rank{},
		&models.Tier{},
		&models.Player{},
		&models.Badge{},
		&models.PlayerBadge{},
		&models.LegendaryBadge{},
		&models.LegendaryBadgeGrant{},
		&models.XpAdjustment{},
		&models.MatchRecord{},
		&models.GamificationRule{},
		&models.Event{},
		&models.EventSignup{},
		&models.EventAttendee{},
		&models.Transaction{},
		&models.GearItem{},
		&models.Raffle{},
		&models.RafflePrize{},
		&models.RaffleTicket{},
		&models.RaffleWinner{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// seedLadder installs a two-rank ladder used across the service tests.
func seedLadder(t *testing.T, db *gorm.DB) {
	t.Helper()

	ranks := []models.Rank{
		{
			ID:   "rank-rookie",
			Name: "Rookie",
			Tiers: []models.Tier{
				{ID: "tier-r1", RankID: "rank-rookie", Name: "Rookie I", MinXP: 0},
				{ID: "tier-r2", RankID: "rank-rookie", Name: "Rookie II", MinXP: 1000},
			},
		},
		{
			ID:   "rank-veteran",
			Name: "Veteran",
			Tiers: []models.Tier{
				{ID: "tier-v1", RankID: "rank-veteran", Name: "Veteran I", MinXP: 3000},
			},
		},
	}
	if err := db.Create(&ranks).Error; err != nil {
		t.Fatalf("seed ranks: %v", err)
	}
}

func seedPlayer(t *testing.T, db *gorm.DB, id string, xp int64) *models.Player {
	t.Helper()

	p := models.Player{
		ID:             id,
		ExternalUserID: "ext-" + id,
		Username:       id,
		XP:             xp,
		TierID:         nil,
		TierName:       "Rookie I",
		RankName:       "Rookie",
	}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("seed player %s: %v", id, err)
	}
	return &p
}
