package engine

import (
	"testing"
	"time"

	"league-ops-system/models"
)

func settlementRules() []models.GamificationRule {
	return []models.GamificationRule{
		{Code: models.RuleBaseParticipation, Value: 50},
		{Code: models.RuleKill, Value: 10},
		{Code: models.RuleHeadshot, Value: 5},
		{Code: models.RuleDeathPenalty, Value: -2},
		{Code: models.RuleNoShowPenalty, Value: -25},
	}
}

func settlementInput() SettlementInput {
	attendee := &models.Player{ID: "p-attendee", Username: "ash", XP: 900, TierName: "Rookie I", RankName: "Rookie"}
	noShow := &models.Player{ID: "p-noshow", Username: "birch", XP: 400, TierName: "Rookie I", RankName: "Rookie"}

	return SettlementInput{
		Event: models.Event{
			ID:      "event-1",
			Name:    "Saturday Skirmish",
			GameFee: 30,
			Status:  models.EventStatusInProgress,
		},
		Attendees: []models.EventAttendee{
			{
				ID:            "att-1",
				EventID:       "event-1",
				PlayerID:      "p-attendee",
				Kills:         8,
				Deaths:        3,
				Headshots:     2,
				PaymentStatus: models.PaymentStatusPaid,
			},
		},
		Signups: []models.EventSignup{
			{ID: "signup-1", EventID: "event-1", PlayerID: "p-attendee"},
			{ID: "signup-2", EventID: "event-1", PlayerID: "p-noshow"},
		},
		Players: map[string]*models.Player{
			attendee.ID: attendee,
			noShow.ID:   noShow,
		},
		Rules: settlementRules(),
		Ranks: ladderRanks(),
		Now:   time.Date(2026, 4, 4, 18, 0, 0, 0, time.UTC),
	}
}

func TestSettleAttendeeScoreAndHistory(t *testing.T) {
	in := settlementInput()
	out := Settle(in)

	p := in.Players["p-attendee"]
	// 50 + 8*10 + 2*5 + 3*(-2) = 134
	if p.XP != 900+134 {
		t.Errorf("expected xp %d, got %d", 900+134, p.XP)
	}
	if p.Kills != 8 || p.Deaths != 3 || p.Headshots != 2 || p.GamesPlayed != 1 {
		t.Errorf("lifetime stats not aggregated: %+v", p)
	}
	if len(p.MatchHistory) != 1 {
		t.Fatalf("expected exactly one match record, got %d", len(p.MatchHistory))
	}
	rec := p.MatchHistory[0]
	if rec.EventID != "event-1" || rec.Kills != 8 || rec.Deaths != 3 || rec.Headshots != 2 {
		t.Errorf("unexpected match record %+v", rec)
	}
	if len(out.MatchRecords) != 1 {
		t.Errorf("result must carry the new match record, got %d", len(out.MatchRecords))
	}
	// 1034 XP still resolves inside Rookie II
	if p.TierName != "Rookie II" {
		t.Errorf("expected tier recompute to Rookie II, got %q", p.TierName)
	}
}

func TestSettleNoShowPenaltyWithoutRecord(t *testing.T) {
	in := settlementInput()
	Settle(in)

	p := in.Players["p-noshow"]
	if p.XP != 400-25 {
		t.Errorf("expected xp %d, got %d", 400-25, p.XP)
	}
	if len(p.MatchHistory) != 0 {
		t.Errorf("no-show must not receive a match record, got %d", len(p.MatchHistory))
	}
	if p.GamesPlayed != 0 {
		t.Errorf("no-show must not count a game, got %d", p.GamesPlayed)
	}
}

func TestSettleEventOverridesBeatGlobalRules(t *testing.T) {
	in := settlementInput()
	in.Event.XPOverrides = models.Int64Map{
		models.RuleKill:              25,
		models.RuleBaseParticipation: 0,
	}
	Settle(in)

	p := in.Players["p-attendee"]
	// 0 + 8*25 + 2*5 + 3*(-2) = 204
	if p.XP != 900+204 {
		t.Errorf("expected overridden xp %d, got %d", 900+204, p.XP)
	}
}

func TestSettleClearsAllSignups(t *testing.T) {
	out := Settle(settlementInput())
	if len(out.ClearedSignupIDs) != 2 {
		t.Fatalf("every signup is retired at settlement, got %d", len(out.ClearedSignupIDs))
	}
}

func TestSettlePaidAttendeeTransactions(t *testing.T) {
	out := Settle(settlementInput())

	if len(out.Transactions) != 1 {
		t.Fatalf("expected one event revenue transaction, got %d", len(out.Transactions))
	}
	txn := out.Transactions[0]
	if txn.Type != models.TransactionEventRevenue || txn.Amount != 30 {
		t.Errorf("unexpected transaction %+v", txn)
	}
	if txn.RelatedEventID != "event-1" || txn.RelatedPlayerID != "p-attendee" {
		t.Errorf("transaction not linked to event and player: %+v", txn)
	}
}

func TestSettleUnpaidAttendeeEmitsNoTransaction(t *testing.T) {
	in := settlementInput()
	in.Attendees[0].PaymentStatus = models.PaymentStatusPending
	out := Settle(in)
	if len(out.Transactions) != 0 {
		t.Errorf("pending payment must not generate revenue, got %d", len(out.Transactions))
	}
}

func TestSettleDiscountAppliesToGameFeeOnly(t *testing.T) {
	in := settlementInput()
	in.Attendees[0].Discount = 10
	in.Attendees[0].RentedGearIDs = models.StringList{"gear-1"}
	in.Gear = map[string]models.GearItem{
		"gear-1": {ID: "gear-1", Name: "Rental Rifle", SalePrice: 15},
	}
	out := Settle(in)

	if len(out.Transactions) != 2 {
		t.Fatalf("expected event + rental revenue, got %d", len(out.Transactions))
	}
	byType := map[models.TransactionType]float64{}
	for _, txn := range out.Transactions {
		byType[txn.Type] = txn.Amount
	}
	if byType[models.TransactionEventRevenue] != 20 {
		t.Errorf("expected discounted game fee 20, got %v", byType[models.TransactionEventRevenue])
	}
	if byType[models.TransactionRentalRevenue] != 15 {
		t.Errorf("rental revenue must not be discounted, got %v", byType[models.TransactionRentalRevenue])
	}
}

func TestSettleRentalPriceOverrideWins(t *testing.T) {
	in := settlementInput()
	in.Attendees[0].RentedGearIDs = models.StringList{"gear-1", "gear-2"}
	in.Event.RentalPriceOverrides = models.Float64Map{"gear-1": 5}
	in.Gear = map[string]models.GearItem{
		"gear-1": {ID: "gear-1", SalePrice: 15},
		"gear-2": {ID: "gear-2", SalePrice: 8},
	}
	out := Settle(in)

	var rental float64
	for _, txn := range out.Transactions {
		if txn.Type == models.TransactionRentalRevenue {
			rental = txn.Amount
		}
	}
	if rental != 13 { // 5 (override) + 8 (base)
		t.Errorf("expected rental total 13, got %v", rental)
	}
}

func TestSettleDiscountNeverGoesNegative(t *testing.T) {
	in := settlementInput()
	in.Attendees[0].Discount = 100
	out := Settle(in)
	if out.Transactions[0].Amount != 0 {
		t.Errorf("over-discounted fee must floor at zero, got %v", out.Transactions[0].Amount)
	}
}

func TestSettleAutoAwardsNewlyEarnedBadges(t *testing.T) {
	in := settlementInput()
	in.Badges = []models.Badge{
		{ID: "badge-5-kills", Name: "Slayer", CriteriaKind: models.CriteriaKills, CriteriaValue: 5},
		{ID: "badge-100-kills", Name: "Reaper", CriteriaKind: models.CriteriaKills, CriteriaValue: 100},
		{ID: "badge-custom", Name: "Founder", CriteriaKind: models.CriteriaCustom},
	}
	out := Settle(in)

	if len(out.AwardedBadges) != 1 || out.AwardedBadges[0].BadgeID != "badge-5-kills" {
		t.Fatalf("expected only the 5-kill badge, got %+v", out.AwardedBadges)
	}
	if !in.Players["p-attendee"].HasBadge("badge-5-kills") {
		t.Error("award not reflected on the player snapshot")
	}
}

func TestSettleAlreadyHeldBadgeNotReAwarded(t *testing.T) {
	in := settlementInput()
	in.Players["p-attendee"].Badges = []models.PlayerBadge{
		{PlayerID: "p-attendee", BadgeID: "badge-5-kills"},
	}
	in.Badges = []models.Badge{
		{ID: "badge-5-kills", Name: "Slayer", CriteriaKind: models.CriteriaKills, CriteriaValue: 5},
	}
	out := Settle(in)
	if len(out.AwardedBadges) != 0 {
		t.Errorf("held badge must not be re-awarded, got %+v", out.AwardedBadges)
	}
}

func TestSettleLeavesUninvolvedPlayersAlone(t *testing.T) {
	in := settlementInput()
	bystander := &models.Player{ID: "p-bystander", XP: 777}
	in.Players["p-bystander"] = bystander

	out := Settle(in)

	if bystander.XP != 777 || len(bystander.MatchHistory) != 0 {
		t.Errorf("bystander was touched: %+v", bystander)
	}
	for _, p := range out.UpdatedPlayers {
		if p.ID == "p-bystander" {
			t.Error("bystander must not appear in the update set")
		}
	}
}

func TestSettleRunningTwiceDoubleCounts(t *testing.T) {
	// The cascade keeps no memory of prior runs; the caller's status
	// transition is the only guard.
	in := settlementInput()
	Settle(in)
	Settle(in)

	p := in.Players["p-attendee"]
	if p.GamesPlayed != 2 || len(p.MatchHistory) != 2 {
		t.Errorf("second invocation is expected to double-count: games=%d records=%d",
			p.GamesPlayed, len(p.MatchHistory))
	}
}
