package engine

import (
	"errors"
	"strings"
	"time"

	"league-ops-system/models"

	"github.com/google/uuid"
)

// ErrEmptyReason rejects manual adjustments without a user-visible reason.
var ErrEmptyReason = errors.New("adjustment reason is required")

// ApplyAdjustment appends one manual entry to the player's XP ledger and
// recomputes the cached tier against the new total. The player is
// mutated to a state consistent as of a single logical write: stats.xp,
// the tier cache, and the adjustments log all agree when it returns.
//
// A zero amount is accepted as an intentional no-op entry. No rank-up
// event is emitted — callers diff the old and new tier if they need to
// react. Prior entries are never touched.
func ApplyAdjustment(p *models.Player, amount int64, reason string, ranks []models.Rank, now time.Time) (*models.XpAdjustment, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, ErrEmptyReason
	}

	p.XP += amount
	applyTierCache(p, ranks, now)

	adj := models.XpAdjustment{
		ID:        uuid.NewString(),
		PlayerID:  p.ID,
		Amount:    amount,
		Reason:    reason,
		CreatedAt: now,
	}
	p.XpAdjustments = append(p.XpAdjustments, adj)
	return &p.XpAdjustments[len(p.XpAdjustments)-1], nil
}
