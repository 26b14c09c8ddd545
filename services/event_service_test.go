package services

import (
	"errors"
	"testing"
	"time"

	"league-ops-system/models"

	"gorm.io/gorm"
)

func seedSettleableEvent(t *testing.T, db *gorm.DB) *models.Event {
	t.Helper()

	seedLadder(t, db)
	if err := NewConfigService(db).SeedDefaultRules(); err != nil {
		t.Fatalf("seed rules: %v", err)
	}

	e := models.Event{
		ID:        "event-1",
		Name:      "Saturday Skirmish",
		Slug:      "saturday-skirmish",
		StartTime: time.Now().Add(-2 * time.Hour),
		GameFee:   30,
		Status:    models.EventStatusInProgress,
	}
	if err := db.Create(&e).Error; err != nil {
		t.Fatalf("seed event: %v", err)
	}
	return &e
}

func TestFinalizeEventPersistsSettlement(t *testing.T) {
	db := newTestDB(t)
	event := seedSettleableEvent(t, db)
	seedPlayer(t, db, "ash", 900)
	seedPlayer(t, db, "birch", 400)

	svc := NewEventService(db)
	if _, err := svc.AddSignup(event.ID, "ash"); err != nil {
		t.Fatalf("signup ash: %v", err)
	}
	if _, err := svc.AddSignup(event.ID, "birch"); err != nil {
		t.Fatalf("signup birch: %v", err)
	}
	if err := svc.CheckIn(event.ID, &models.EventAttendee{
		PlayerID:      "ash",
		Kills:         8,
		Deaths:        3,
		Headshots:     2,
		PaymentStatus: models.PaymentStatusPaid,
	}); err != nil {
		t.Fatalf("check in: %v", err)
	}

	result, err := svc.FinalizeEvent(event.ID)
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if len(result.UpdatedPlayers) != 2 {
		t.Errorf("expected attendee and no-show updated, got %d", len(result.UpdatedPlayers))
	}

	var ash models.Player
	if err := db.First(&ash, "id = ?", "ash").Error; err != nil {
		t.Fatalf("reload ash: %v", err)
	}
	// 50 + 8*10 + 2*5 + 3*(-2) = 134
	if ash.XP != 900+134 || ash.GamesPlayed != 1 {
		t.Errorf("attendee not persisted: xp=%d games=%d", ash.XP, ash.GamesPlayed)
	}
	if ash.TierName != "Rookie II" {
		t.Errorf("tier cache not persisted, got %q", ash.TierName)
	}

	var birch models.Player
	if err := db.First(&birch, "id = ?", "birch").Error; err != nil {
		t.Fatalf("reload birch: %v", err)
	}
	if birch.XP != 400-25 || birch.GamesPlayed != 0 {
		t.Errorf("no-show not persisted: xp=%d games=%d", birch.XP, birch.GamesPlayed)
	}

	var records int64
	db.Model(&models.MatchRecord{}).Where("event_id = ?", event.ID).Count(&records)
	if records != 1 {
		t.Errorf("expected 1 match record, got %d", records)
	}

	var txns int64
	db.Model(&models.Transaction{}).Where("related_event_id = ?", event.ID).Count(&txns)
	if txns != 1 {
		t.Errorf("expected 1 revenue transaction, got %d", txns)
	}

	var signups int64
	db.Model(&models.EventSignup{}).Where("event_id = ?", event.ID).Count(&signups)
	if signups != 0 {
		t.Errorf("signups must be retired at settlement, %d remain", signups)
	}
}

func TestFinalizeEventRunsExactlyOnce(t *testing.T) {
	db := newTestDB(t)
	event := seedSettleableEvent(t, db)
	seedPlayer(t, db, "ash", 900)

	svc := NewEventService(db)
	if err := svc.CheckIn(event.ID, &models.EventAttendee{PlayerID: "ash", Kills: 1}); err != nil {
		t.Fatalf("check in: %v", err)
	}

	if _, err := svc.FinalizeEvent(event.ID); err != nil {
		t.Fatalf("first finalize: %v", err)
	}
	if _, err := svc.FinalizeEvent(event.ID); !errors.Is(err, ErrAlreadySettled) {
		t.Fatalf("second finalize: expected ErrAlreadySettled, got %v", err)
	}

	var ash models.Player
	db.First(&ash, "id = ?", "ash")
	if ash.GamesPlayed != 1 {
		t.Errorf("second finalize must not double-count, games=%d", ash.GamesPlayed)
	}
}

func TestFinalizeEventUnknownID(t *testing.T) {
	db := newTestDB(t)
	seedSettleableEvent(t, db)

	_, err := NewEventService(db).FinalizeEvent("no-such-event")
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected record not found, got %v", err)
	}
}

func TestFinalizeEventRejectsCancelled(t *testing.T) {
	db := newTestDB(t)
	event := seedSettleableEvent(t, db)

	svc := NewEventService(db)
	if err := svc.CancelEvent(event.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if _, err := svc.FinalizeEvent(event.ID); !errors.Is(err, ErrAlreadySettled) {
		t.Fatalf("expected ErrAlreadySettled after cancel, got %v", err)
	}
}

func TestAddSignupClosedAfterSettlement(t *testing.T) {
	db := newTestDB(t)
	event := seedSettleableEvent(t, db)
	seedPlayer(t, db, "ash", 0)

	svc := NewEventService(db)
	if _, err := svc.FinalizeEvent(event.ID); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if _, err := svc.AddSignup(event.ID, "ash"); !errors.Is(err, ErrSignupsClosed) {
		t.Fatalf("expected ErrSignupsClosed, got %v", err)
	}
}

func TestCheckInTwiceRejected(t *testing.T) {
	db := newTestDB(t)
	event := seedSettleableEvent(t, db)
	seedPlayer(t, db, "ash", 0)

	svc := NewEventService(db)
	if err := svc.CheckIn(event.ID, &models.EventAttendee{PlayerID: "ash"}); err != nil {
		t.Fatalf("first check in: %v", err)
	}
	err := svc.CheckIn(event.ID, &models.EventAttendee{PlayerID: "ash"})
	if !errors.Is(err, ErrAlreadyCheckedIn) {
		t.Fatalf("expected ErrAlreadyCheckedIn, got %v", err)
	}
}
