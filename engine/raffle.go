package engine

import (
	"math/rand"
	"sort"
	"time"

	"league-ops-system/models"

	"github.com/google/uuid"
)

// DrawRaffle assigns prizes in ascending place order, each to a
// uniformly chosen ticket from the still-remaining pool. A winning
// ticket leaves the pool, so no ticket instance wins twice in one draw;
// a player holding several tickets can still win several prizes. The
// draw stops early when the pool runs out — a partial winner list, not
// an error.
//
// An empty ticket pool is a no-op: no winners, status untouched. After a
// non-empty draw the raffle is Completed. The engine does not check the
// prior status; preventing a redraw is the caller's responsibility.
//
// rnd is injected so production can seed from real entropy while tests
// replay a fixed sequence.
func DrawRaffle(r *models.Raffle, rnd *rand.Rand, now time.Time) []models.RaffleWinner {
	if len(r.Tickets) == 0 {
		return nil
	}

	prizes := make([]models.RafflePrize, len(r.Prizes))
	copy(prizes, r.Prizes)
	sort.Slice(prizes, func(i, j int) bool { return prizes[i].Place < prizes[j].Place })

	pool := make([]models.RaffleTicket, len(r.Tickets))
	copy(pool, r.Tickets)

	var winners []models.RaffleWinner
	for _, prize := range prizes {
		if len(pool) == 0 {
			break
		}
		i := rnd.Intn(len(pool))
		ticket := pool[i]

		winners = append(winners, models.RaffleWinner{
			ID:       uuid.NewString(),
			RaffleID: r.ID,
			PrizeID:  prize.ID,
			TicketID: ticket.ID,
			PlayerID: ticket.PlayerID,
			DrawnAt:  now,
		})

		pool[i] = pool[len(pool)-1]
		pool = pool[:len(pool)-1]
	}

	r.Winners = append(r.Winners, winners...)
	r.Status = models.RaffleStatusCompleted
	return winners
}
