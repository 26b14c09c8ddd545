package engine

import (
	"testing"

	"league-ops-system/models"
)

func rankedPlayer() *models.Player {
	return &models.Player{
		ID:          "player-1",
		Username:    "sable",
		Kills:       20,
		Headshots:   4,
		GamesPlayed: 12,
		XP:          1500,
		TierName:    "Rookie II",
		RankName:    "Rookie",
	}
}

func TestEvaluateBadgeKillsProgress(t *testing.T) {
	badge := models.Badge{ID: "badge-kills", CriteriaKind: models.CriteriaKills, CriteriaValue: 50}

	got := EvaluateBadge(badge, rankedPlayer(), ladderRanks())

	if got.Current != 20 || got.Max != 50 {
		t.Errorf("expected 20/50, got %d/%d", got.Current, got.Max)
	}
	if got.Percentage != 40 {
		t.Errorf("expected 40%%, got %v", got.Percentage)
	}
	if got.IsEarned {
		t.Error("badge must not be earned at 20/50")
	}
	if got.Text != "20 / 50" {
		t.Errorf("expected text %q, got %q", "20 / 50", got.Text)
	}
}

func TestEvaluateBadgeCounterKindsUseMatchingStat(t *testing.T) {
	p := rankedPlayer()
	cases := []struct {
		kind    models.BadgeCriteriaKind
		current int64
	}{
		{models.CriteriaKills, p.Kills},
		{models.CriteriaHeadshots, p.Headshots},
		{models.CriteriaGamesPlayed, p.GamesPlayed},
	}
	for _, tc := range cases {
		badge := models.Badge{ID: "b-" + string(tc.kind), CriteriaKind: tc.kind, CriteriaValue: 100}
		got := EvaluateBadge(badge, p, ladderRanks())
		if got.Current != tc.current {
			t.Errorf("%s: expected current %d, got %d", tc.kind, tc.current, got.Current)
		}
	}
}

func TestEvaluateBadgePercentageCapsAtHundred(t *testing.T) {
	badge := models.Badge{ID: "badge-hs", CriteriaKind: models.CriteriaHeadshots, CriteriaValue: 2}
	got := EvaluateBadge(badge, rankedPlayer(), ladderRanks())
	if got.Percentage != 100 {
		t.Errorf("expected capped 100%%, got %v", got.Percentage)
	}
	if !got.IsEarned {
		t.Error("expected earned once past the threshold")
	}
}

func TestEvaluateBadgeHeldBadgeIsTerminal(t *testing.T) {
	badge := models.Badge{ID: "badge-kills", CriteriaKind: models.CriteriaKills, CriteriaValue: 50}
	p := rankedPlayer()
	p.Badges = []models.PlayerBadge{{PlayerID: p.ID, BadgeID: badge.ID}}
	p.Kills = 0 // the underlying stat no longer qualifies

	got := EvaluateBadge(badge, p, ladderRanks())
	if !got.IsEarned {
		t.Fatal("held badge must stay earned regardless of current stats")
	}
	if got.Current != 1 || got.Max != 1 || got.Percentage != 100 || got.Text != "Unlocked" {
		t.Errorf("unexpected terminal result %+v", got)
	}
}

func TestEvaluateBadgeMissingRankData(t *testing.T) {
	badge := models.Badge{ID: "badge-kills", CriteriaKind: models.CriteriaKills, CriteriaValue: 50}
	p := rankedPlayer()
	p.RankName = ""

	got := EvaluateBadge(badge, p, ladderRanks())
	if got.IsEarned || got.Text != "Rank data missing" {
		t.Errorf("expected rank-data-missing sentinel, got %+v", got)
	}
}

func TestEvaluateBadgeRankReached(t *testing.T) {
	badge := models.Badge{ID: "badge-rank", CriteriaKind: models.CriteriaRank, CriteriaRank: "Rookie"}
	got := EvaluateBadge(badge, rankedPlayer(), ladderRanks())
	if !got.IsEarned {
		t.Errorf("player at Rookie should have earned the Rookie badge, got %+v", got)
	}
}

func TestEvaluateBadgeRankInProgress(t *testing.T) {
	badge := models.Badge{ID: "badge-rank", CriteriaKind: models.CriteriaRank, CriteriaRank: "Veteran"}
	got := EvaluateBadge(badge, rankedPlayer(), ladderRanks())

	if got.IsEarned {
		t.Fatal("Rookie player must not hold the Veteran badge")
	}
	if got.Current != 0 || got.Max != 1 {
		t.Errorf("expected ordinal progress 0/1, got %d/%d", got.Current, got.Max)
	}
	if got.Text != "Reach Veteran Rank" {
		t.Errorf("unexpected text %q", got.Text)
	}
}

func TestEvaluateBadgeRankTargetMissingNeverCompletes(t *testing.T) {
	badge := models.Badge{ID: "badge-rank", CriteriaKind: models.CriteriaRank, CriteriaRank: "Mythic"}
	got := EvaluateBadge(badge, rankedPlayer(), ladderRanks())

	if got.IsEarned || got.Percentage != 0 {
		t.Errorf("dangling target must never complete, got %+v", got)
	}
	if got.Text != "Reach Mythic Rank" {
		t.Errorf("unexpected text %q", got.Text)
	}
}

func TestEvaluateBadgeCustomNeverAutoEvaluates(t *testing.T) {
	badge := models.Badge{ID: "badge-custom", CriteriaKind: models.CriteriaCustom}
	got := EvaluateBadge(badge, rankedPlayer(), ladderRanks())
	if got.IsEarned || got.Text != "Admin Awarded" {
		t.Errorf("custom badges are admin-awarded only, got %+v", got)
	}
}
