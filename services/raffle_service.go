package services

import (
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"log"
	"math/rand"
	"time"

	"league-ops-system/engine"
	"league-ops-system/models"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

var (
	ErrAlreadyDrawn     = errors.New("raffle winners have already been drawn")
	ErrNoTickets        = errors.New("raffle has no tickets to draw from")
	ErrRaffleNotActive  = errors.New("tickets can only be bought for an active raffle")
	ErrInvalidPrizeList = errors.New("raffle needs 1 to 3 prizes with unique places 1..3")
)

type RaffleService struct {
	DB *gorm.DB
}

func NewRaffleService(db *gorm.DB) *RaffleService {
	return &RaffleService{DB: db}
}

func (s *RaffleService) CreateRaffle(r *models.Raffle) error {
	if len(r.Prizes) < 1 || len(r.Prizes) > 3 {
		return ErrInvalidPrizeList
	}
	places := make(map[int]bool, len(r.Prizes))
	for i := range r.Prizes {
		p := &r.Prizes[i]
		if p.Place < 1 || p.Place > 3 || places[p.Place] {
			return ErrInvalidPrizeList
		}
		places[p.Place] = true
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
	}

	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	r.Slug = slug.Make(r.Name)
	if r.Status == "" {
		r.Status = models.RaffleStatusUpcoming
	}
	return s.DB.Create(r).Error
}

func (s *RaffleService) GetRaffle(id string) (*models.Raffle, error) {
	var r models.Raffle
	err := s.DB.Preload("Prizes").Preload("Tickets").Preload("Winners").
		First(&r, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *RaffleService) ListRaffles(status models.RaffleStatus) ([]models.Raffle, error) {
	q := s.DB.Preload("Prizes").Order("start_time DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var raffles []models.Raffle
	err := q.Find(&raffles).Error
	return raffles, err
}

// BuyTicket sells one ticket and records the sale as retail revenue.
// Players may buy as many tickets as they like while the raffle is
// active.
func (s *RaffleService) BuyTicket(raffleID, playerID string) (*models.RaffleTicket, error) {
	var r models.Raffle
	if err := s.DB.First(&r, "id = ?", raffleID).Error; err != nil {
		return nil, err
	}
	if r.Status != models.RaffleStatusActive {
		return nil, ErrRaffleNotActive
	}

	ticket := models.RaffleTicket{
		ID:       uuid.NewString(),
		RaffleID: raffleID,
		PlayerID: playerID,
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&ticket).Error; err != nil {
			return err
		}
		if r.TicketPrice > 0 {
			return tx.Create(&models.Transaction{
				ID:              uuid.NewString(),
				Date:            time.Now(),
				Type:            models.TransactionRetailRevenue,
				Amount:          r.TicketPrice,
				RelatedPlayerID: playerID,
				PaymentStatus:   models.PaymentStatusPaid,
				Description:     "Raffle ticket: " + r.Name,
			}).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

// DrawWinners runs the draw exactly once. The status transition to
// Completed is an atomic compare-and-set taken before the draw; a
// concurrent second click loses the race and gets ErrAlreadyDrawn. An
// empty ticket pool rolls the whole transaction back, leaving the
// raffle drawable once tickets exist.
func (s *RaffleService) DrawWinners(raffleID string) ([]models.RaffleWinner, error) {
	var winners []models.RaffleWinner

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Raffle{}).
			Where("id = ? AND status <> ?", raffleID, models.RaffleStatusCompleted).
			Update("status", models.RaffleStatusCompleted)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var count int64
			tx.Model(&models.Raffle{}).Where("id = ?", raffleID).Count(&count)
			if count == 0 {
				return gorm.ErrRecordNotFound
			}
			return ErrAlreadyDrawn
		}

		var r models.Raffle
		if err := tx.Preload("Prizes").Preload("Tickets").
			First(&r, "id = ?", raffleID).Error; err != nil {
			return err
		}
		if len(r.Tickets) == 0 {
			return ErrNoTickets
		}

		winners = engine.DrawRaffle(&r, newDrawRand(), time.Now())
		if len(winners) > 0 {
			return tx.Create(&winners).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("🎟️ Raffle drawn: %s → %d winner(s)", raffleID, len(winners))
	return winners, nil
}

// newDrawRand seeds math/rand from real entropy so draws are fair
// between process restarts; tests drive the engine with fixed seeds.
func newDrawRand() *rand.Rand {
	var seed int64
	if err := binary.Read(crand.Reader, binary.LittleEndian, &seed); err != nil {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
