// Package engine implements the league's progression and settlement
// computations as pure functions over loaded documents. It performs no
// I/O: the service layer loads inputs, invokes the engine, and persists
// whatever the engine returns.
package engine

import (
	"sort"
	"time"

	"league-ops-system/models"
)

// TierResolution is the result of mapping cumulative XP onto the
// configured tier ladder. Previous/Next are the global neighbors of
// Current across all ranks, for progress-bar style reporting.
type TierResolution struct {
	Current  models.Tier  `json:"current"`
	Previous *models.Tier `json:"previous,omitempty"`
	Next     *models.Tier `json:"next,omitempty"`
	Rank     *models.Rank `json:"rank,omitempty"`
}

type ownedTier struct {
	tier models.Tier
	rank *models.Rank
}

// ResolveTier returns the tier with the largest MinXP not exceeding xp.
// When xp sits below the lowest configured tier the lowest tier is
// returned anyway — a player never resolves to no tier while tiers
// exist. With no tiers configured at all, the Unranked sentinel comes
// back with a nil rank.
func ResolveTier(xp int64, ranks []models.Rank) TierResolution {
	var flat []ownedTier
	for i := range ranks {
		for _, t := range ranks[i].Tiers {
			if t.ID == "" && t.Name == "" {
				// unsaved placeholder rows, nothing to resolve against
				continue
			}
			flat = append(flat, ownedTier{tier: t, rank: &ranks[i]})
		}
	}
	if len(flat) == 0 {
		return TierResolution{Current: models.UnrankedTier()}
	}

	sort.SliceStable(flat, func(i, j int) bool {
		return flat[i].tier.MinXP < flat[j].tier.MinXP
	})

	idx := 0
	for i := range flat {
		if flat[i].tier.MinXP <= xp {
			idx = i
		} else {
			break
		}
	}

	res := TierResolution{Current: flat[idx].tier, Rank: flat[idx].rank}
	if idx > 0 {
		res.Previous = &flat[idx-1].tier
	}
	if idx < len(flat)-1 {
		res.Next = &flat[idx+1].tier
	}
	return res
}

// RankNames returns the configured rank names ordered by each rank's
// lowest tier threshold. Badge ordinal comparisons index into this list.
func RankNames(ranks []models.Rank) []string {
	ordered := make([]models.Rank, len(ranks))
	copy(ordered, ranks)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].MinTierXP() < ordered[j].MinTierXP()
	})
	names := make([]string, len(ordered))
	for i, r := range ordered {
		names[i] = r.Name
	}
	return names
}

// applyTierCache recomputes the player's cached tier columns against the
// current XP total. The cache is a materialized view of ResolveTier and
// must be refreshed together with any XP write.
func applyTierCache(p *models.Player, ranks []models.Rank, now time.Time) {
	prevRank := p.RankName

	res := ResolveTier(p.XP, ranks)
	if res.Current.ID != "" {
		id := res.Current.ID
		p.TierID = &id
	} else {
		p.TierID = nil
	}
	p.TierName = res.Current.Name
	if res.Rank != nil {
		p.RankName = res.Rank.Name
	} else {
		p.RankName = ""
	}

	if p.RankName != prevRank && prevRank != "" {
		t := now
		p.LastRankChangeAt = &t
	}
}
