package services

import (
	"errors"
	"log"
	"time"

	"league-ops-system/engine"
	"league-ops-system/models"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrAlreadySettled   = errors.New("event is already completed or cancelled")
	ErrSignupsClosed    = errors.New("signups are closed for this event")
	ErrAlreadySignedUp  = errors.New("player is already signed up")
	ErrAlreadyCheckedIn = errors.New("player is already checked in")
)

type EventService struct {
	DB *gorm.DB
}

func NewEventService(db *gorm.DB) *EventService {
	return &EventService{DB: db}
}

func (s *EventService) CreateEvent(e *models.Event) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	e.Slug = slug.Make(e.Name)
	if e.Status == "" {
		e.Status = models.EventStatusUpcoming
	}
	return s.DB.Create(e).Error
}

func (s *EventService) GetEvent(id string) (*models.Event, error) {
	var e models.Event
	err := s.DB.Preload("Signups").Preload("Attendees").First(&e, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *EventService) ListEvents(status models.EventStatus) ([]models.Event, error) {
	q := s.DB.Order("start_time DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var events []models.Event
	err := q.Find(&events).Error
	return events, err
}

// CancelEvent moves a not-yet-settled event to its other terminal state.
func (s *EventService) CancelEvent(id string) error {
	res := s.DB.Model(&models.Event{}).
		Where("id = ? AND status IN ?", id,
			[]models.EventStatus{models.EventStatusUpcoming, models.EventStatusInProgress}).
		Update("status", models.EventStatusCancelled)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAlreadySettled
	}
	return nil
}

// AddSignup pre-registers a player. Signups stay mutable until the event
// settles.
func (s *EventService) AddSignup(eventID, playerID string) (*models.EventSignup, error) {
	var e models.Event
	if err := s.DB.First(&e, "id = ?", eventID).Error; err != nil {
		return nil, err
	}
	if e.Status != models.EventStatusUpcoming && e.Status != models.EventStatusInProgress {
		return nil, ErrSignupsClosed
	}

	signup := models.EventSignup{
		ID:       uuid.NewString(),
		EventID:  eventID,
		PlayerID: playerID,
	}
	err := s.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&signup).Error
	if err != nil {
		return nil, err
	}
	return &signup, nil
}

func (s *EventService) RemoveSignup(eventID, playerID string) error {
	return s.DB.Where("event_id = ? AND player_id = ?", eventID, playerID).
		Delete(&models.EventSignup{}).Error
}

// CheckIn confirms a participant with their payment and gear choices.
func (s *EventService) CheckIn(eventID string, attendee *models.EventAttendee) error {
	var e models.Event
	if err := s.DB.First(&e, "id = ?", eventID).Error; err != nil {
		return err
	}
	if e.Status != models.EventStatusUpcoming && e.Status != models.EventStatusInProgress {
		return ErrSignupsClosed
	}

	var count int64
	s.DB.Model(&models.EventAttendee{}).
		Where("event_id = ? AND player_id = ?", eventID, attendee.PlayerID).
		Count(&count)
	if count > 0 {
		return ErrAlreadyCheckedIn
	}

	attendee.ID = uuid.NewString()
	attendee.EventID = eventID
	if attendee.PaymentStatus == "" {
		attendee.PaymentStatus = models.PaymentStatusPending
	}
	return s.DB.Create(attendee).Error
}

// UpdateAttendeeStats records live performance numbers during play.
func (s *EventService) UpdateAttendeeStats(eventID, playerID string, kills, deaths, headshots int64) error {
	res := s.DB.Model(&models.EventAttendee{}).
		Where("event_id = ? AND player_id = ?", eventID, playerID).
		Updates(map[string]interface{}{
			"kills":     kills,
			"deaths":    deaths,
			"headshots": headshots,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return res.Error
}

// FinalizeEvent settles the event: converts live attendance data into
// permanent history, rank changes, and transactions, then retires the
// signups. The status transition is an atomic compare-and-set taken
// BEFORE the cascade runs, so two concurrent finalize actions cannot
// both settle (the cascade itself is not idempotent).
func (s *EventService) FinalizeEvent(eventID string) (*engine.SettlementResult, error) {
	var result engine.SettlementResult

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Event{}).
			Where("id = ? AND status IN ?", eventID,
				[]models.EventStatus{models.EventStatusUpcoming, models.EventStatusInProgress}).
			Update("status", models.EventStatusCompleted)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var count int64
			tx.Model(&models.Event{}).Where("id = ?", eventID).Count(&count)
			if count == 0 {
				return gorm.ErrRecordNotFound
			}
			return ErrAlreadySettled
		}

		var event models.Event
		if err := tx.Preload("Signups").Preload("Attendees").
			First(&event, "id = ?", eventID).Error; err != nil {
			return err
		}

		input, err := s.loadSettlementInput(tx, event)
		if err != nil {
			return err
		}

		result = engine.Settle(input)

		for _, p := range result.UpdatedPlayers {
			if err := tx.Model(&models.Player{}).Where("id = ?", p.ID).
				Updates(map[string]interface{}{
					"kills":               p.Kills,
					"deaths":              p.Deaths,
					"headshots":           p.Headshots,
					"games_played":        p.GamesPlayed,
					"xp":                  p.XP,
					"tier_id":             p.TierID,
					"tier_name":           p.TierName,
					"rank_name":           p.RankName,
					"last_rank_change_at": p.LastRankChangeAt,
				}).Error; err != nil {
				return err
			}
		}
		if len(result.MatchRecords) > 0 {
			if err := tx.Create(&result.MatchRecords).Error; err != nil {
				return err
			}
		}
		if len(result.Transactions) > 0 {
			if err := tx.Create(&result.Transactions).Error; err != nil {
				return err
			}
		}
		if len(result.AwardedBadges) > 0 {
			if err := tx.Create(&result.AwardedBadges).Error; err != nil {
				return err
			}
		}
		if len(result.ClearedSignupIDs) > 0 {
			if err := tx.Delete(&models.EventSignup{}, "id IN ?", result.ClearedSignupIDs).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("🏁 Event settled: %s → %d players, %d match records, %d transactions, %d badges",
		eventID, len(result.UpdatedPlayers), len(result.MatchRecords),
		len(result.Transactions), len(result.AwardedBadges))
	return &result, nil
}

// loadSettlementInput gathers every document the cascade reads, inside
// the settling transaction.
func (s *EventService) loadSettlementInput(tx *gorm.DB, event models.Event) (engine.SettlementInput, error) {
	in := engine.SettlementInput{
		Event:     event,
		Attendees: event.Attendees,
		Signups:   event.Signups,
		Now:       time.Now(),
	}

	seen := make(map[string]bool)
	var playerIDs []string
	for _, a := range event.Attendees {
		if !seen[a.PlayerID] {
			seen[a.PlayerID] = true
			playerIDs = append(playerIDs, a.PlayerID)
		}
	}
	for _, su := range event.Signups {
		if !seen[su.PlayerID] {
			seen[su.PlayerID] = true
			playerIDs = append(playerIDs, su.PlayerID)
		}
	}

	if len(playerIDs) > 0 {
		var players []models.Player
		if err := tx.Preload("Badges").Where("id IN ?", playerIDs).Find(&players).Error; err != nil {
			return in, err
		}
		in.Players = make(map[string]*models.Player, len(players))
		for i := range players {
			in.Players[players[i].ID] = &players[i]
		}
	}

	if err := tx.Preload("Tiers").Find(&in.Ranks).Error; err != nil {
		return in, err
	}
	if err := tx.Find(&in.Rules).Error; err != nil {
		return in, err
	}
	if err := tx.Find(&in.Badges).Error; err != nil {
		return in, err
	}

	var gear []models.GearItem
	if err := tx.Find(&gear).Error; err != nil {
		return in, err
	}
	in.Gear = make(map[string]models.GearItem, len(gear))
	for _, g := range gear {
		in.Gear[g.ID] = g
	}

	return in, nil
}
