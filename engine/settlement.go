package engine

import (
	"time"

	"league-ops-system/models"

	"github.com/google/uuid"
)

// SettlementInput carries everything the cascade reads. Players is keyed
// by player id and must cover every attendee and signup; rules are the
// global gamification rules, with the event's XPOverrides winning per
// code; Gear maps gear item id to its catalog entry for rental pricing.
type SettlementInput struct {
	Event     models.Event
	Attendees []models.EventAttendee
	Signups   []models.EventSignup
	Players   map[string]*models.Player
	Rules     []models.GamificationRule
	Badges    []models.Badge
	Ranks     []models.Rank
	Gear      map[string]models.GearItem
	Now       time.Time
}

// SettlementResult is everything the store layer must persist: updated
// players (stats, tier cache, new history), new immutable rows, and the
// signup ids to delete.
type SettlementResult struct {
	UpdatedPlayers   []*models.Player
	MatchRecords     []models.MatchRecord
	Transactions     []models.Transaction
	AwardedBadges    []models.PlayerBadge
	ClearedSignupIDs []string
}

func (in SettlementInput) ruleValue(code string) int64 {
	if v, ok := in.Event.XPOverrides[code]; ok {
		return v
	}
	for _, r := range in.Rules {
		if r.Code == code {
			return r.Value
		}
	}
	return 0
}

// Settle converts an event's live attendance and performance data into
// permanent history, rank changes, and financial transactions, and
// retires the transient signups. Per attendee, in order: score
// calculation, match record, lifetime aggregation, tier recompute with
// badge auto-award, then financial ledgering. Signups absent from the
// attendee list receive the no-show penalty and no match record.
//
// Settle has no memory of prior runs and must be invoked exactly once
// per event — running it twice double-counts XP and transactions. The
// caller guards via the event status transition. Players outside the
// attendee and signup sets are untouched.
func Settle(in SettlementInput) SettlementResult {
	var out SettlementResult

	base := in.ruleValue(models.RuleBaseParticipation)
	killXP := in.ruleValue(models.RuleKill)
	headshotXP := in.ruleValue(models.RuleHeadshot)
	deathXP := in.ruleValue(models.RuleDeathPenalty)
	noShowXP := in.ruleValue(models.RuleNoShowPenalty)

	attended := make(map[string]bool, len(in.Attendees))
	for _, a := range in.Attendees {
		attended[a.PlayerID] = true
	}

	touched := make(map[string]bool)

	for _, a := range in.Attendees {
		p := in.Players[a.PlayerID]
		if p == nil {
			continue
		}

		earnedXP := base + a.Kills*killXP + a.Headshots*headshotXP + a.Deaths*deathXP

		rec := models.MatchRecord{
			ID:         uuid.NewString(),
			PlayerID:   p.ID,
			EventID:    in.Event.ID,
			Kills:      a.Kills,
			Deaths:     a.Deaths,
			Headshots:  a.Headshots,
			RecordedAt: in.Now,
		}
		p.MatchHistory = append(p.MatchHistory, rec)
		out.MatchRecords = append(out.MatchRecords, rec)

		p.Kills += a.Kills
		p.Deaths += a.Deaths
		p.Headshots += a.Headshots
		p.GamesPlayed++
		p.XP += earnedXP

		applyTierCache(p, in.Ranks, in.Now)
		out.AwardedBadges = append(out.AwardedBadges, awardNewBadges(p, in.Badges, in.Ranks, in.Now)...)

		if a.PaymentStatus.IsPaid() {
			fee := in.Event.GameFee - a.Discount
			if fee < 0 {
				fee = 0
			}
			out.Transactions = append(out.Transactions, models.Transaction{
				ID:              uuid.NewString(),
				Date:            in.Now,
				Type:            models.TransactionEventRevenue,
				Amount:          fee,
				RelatedEventID:  in.Event.ID,
				RelatedPlayerID: p.ID,
				PaymentStatus:   a.PaymentStatus,
			})

			if rental := in.rentalTotal(a); rental > 0 {
				out.Transactions = append(out.Transactions, models.Transaction{
					ID:              uuid.NewString(),
					Date:            in.Now,
					Type:            models.TransactionRentalRevenue,
					Amount:          rental,
					RelatedEventID:  in.Event.ID,
					RelatedPlayerID: p.ID,
					PaymentStatus:   a.PaymentStatus,
				})
			}
		}

		if !touched[p.ID] {
			touched[p.ID] = true
			out.UpdatedPlayers = append(out.UpdatedPlayers, p)
		}
	}

	for _, s := range in.Signups {
		out.ClearedSignupIDs = append(out.ClearedSignupIDs, s.ID)
		if attended[s.PlayerID] {
			continue
		}
		p := in.Players[s.PlayerID]
		if p == nil {
			continue
		}

		p.XP += noShowXP
		applyTierCache(p, in.Ranks, in.Now)

		if !touched[p.ID] {
			touched[p.ID] = true
			out.UpdatedPlayers = append(out.UpdatedPlayers, p)
		}
	}

	return out
}

func (in SettlementInput) rentalTotal(a models.EventAttendee) float64 {
	var total float64
	for _, gearID := range a.RentedGearIDs {
		if price, ok := in.Event.RentalPriceOverrides[gearID]; ok {
			total += price
			continue
		}
		if item, ok := in.Gear[gearID]; ok {
			total += item.SalePrice
		}
	}
	return total
}

// awardNewBadges re-evaluates every standard badge against the player's
// updated snapshot and awards those now earned and not already held.
func awardNewBadges(p *models.Player, badges []models.Badge, ranks []models.Rank, now time.Time) []models.PlayerBadge {
	var awarded []models.PlayerBadge
	for _, b := range badges {
		if p.HasBadge(b.ID) {
			continue
		}
		if !EvaluateBadge(b, p, ranks).IsEarned {
			continue
		}
		pb := models.PlayerBadge{
			ID:        uuid.NewString(),
			PlayerID:  p.ID,
			BadgeID:   b.ID,
			AwardedAt: now,
		}
		p.Badges = append(p.Badges, pb)
		awarded = append(awarded, pb)
	}
	return awarded
}
