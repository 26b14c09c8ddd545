package engine

import (
	"fmt"

	"league-ops-system/models"
)

// BadgeProgress is the display-facing unlock state for one badge.
type BadgeProgress struct {
	Current    int64   `json:"current"`
	Max        int64   `json:"max"`
	Percentage float64 `json:"percentage"`
	IsEarned   bool    `json:"is_earned"`
	Text       string  `json:"text"`
}

// EvaluateBadge computes unlock progress for a standard badge. Read-only:
// awarding is a separate explicit step (settlement or admin action).
// An already-held badge is terminal and short-circuits everything else.
func EvaluateBadge(badge models.Badge, player *models.Player, ranks []models.Rank) BadgeProgress {
	if player.HasBadge(badge.ID) {
		return BadgeProgress{Current: 1, Max: 1, Percentage: 100, IsEarned: true, Text: "Unlocked"}
	}
	if player.RankName == "" {
		return BadgeProgress{Max: 1, Text: "Rank data missing"}
	}

	switch badge.CriteriaKind {
	case models.CriteriaKills:
		return counterProgress(player.Kills, badge.CriteriaValue)
	case models.CriteriaHeadshots:
		return counterProgress(player.Headshots, badge.CriteriaValue)
	case models.CriteriaGamesPlayed:
		return counterProgress(player.GamesPlayed, badge.CriteriaValue)
	case models.CriteriaRank:
		return rankProgress(badge, player, ranks)
	case models.CriteriaCustom:
		return BadgeProgress{Max: 1, Text: "Admin Awarded"}
	default:
		// unknown kinds behave like custom: never auto-completable
		return BadgeProgress{Max: 1, Text: "Admin Awarded"}
	}
}

func counterProgress(current, max int64) BadgeProgress {
	if max <= 0 {
		max = 1
	}
	frac := float64(current) / float64(max)
	if frac > 1 {
		frac = 1
	}
	return BadgeProgress{
		Current:    current,
		Max:        max,
		Percentage: frac * 100,
		IsEarned:   current >= max,
		Text:       fmt.Sprintf("%d / %d", current, max),
	}
}

func rankProgress(badge models.Badge, player *models.Player, ranks []models.Rank) BadgeProgress {
	names := RankNames(ranks)

	target := indexOf(names, badge.CriteriaRank)
	if target < 0 {
		// target rank absent from configuration: permanently non-completable
		return BadgeProgress{Max: 1, Text: fmt.Sprintf("Reach %s Rank", badge.CriteriaRank)}
	}

	playerIdx := indexOf(names, player.RankName)
	if playerIdx < 0 {
		playerIdx = 0
	}

	if playerIdx >= target {
		return BadgeProgress{
			Current:    int64(target),
			Max:        int64(target),
			Percentage: 100,
			IsEarned:   true,
			Text:       "Unlocked",
		}
	}
	return BadgeProgress{
		Current:    int64(playerIdx),
		Max:        int64(target),
		Percentage: float64(playerIdx) / float64(target) * 100,
		Text:       fmt.Sprintf("Reach %s Rank", badge.CriteriaRank),
	}
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}
