// services/scheduler.go
package services

import (
	"log"
	"time"

	"league-ops-system/models"

	"github.com/go-co-op/gocron/v2"
)

// StartLifecycleScheduler flips due events and raffles into their live
// states. Settlement and drawing stay explicit admin actions; only the
// entry transitions run on the clock.
func (s *EventService) StartLifecycleScheduler() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	// Every minute: start events whose time has come
	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(func() {
			now := time.Now()

			var events []models.Event
			err := s.DB.Where("status = ? AND start_time <= ?", models.EventStatusUpcoming, now).
				Find(&events).Error
			if err != nil {
				log.Printf("[Scheduler] DB error: %v", err)
				return
			}
			for _, e := range events {
				e.Status = models.EventStatusInProgress
				if err := s.DB.Save(&e).Error; err != nil {
					log.Printf("[Scheduler] Failed to start event %s: %v", e.ID, err)
				} else {
					log.Printf("✅ Auto-started event: %s", e.Name)
				}
			}

			var raffles []models.Raffle
			err = s.DB.Where("status = ? AND start_time <= ?", models.RaffleStatusUpcoming, now).
				Find(&raffles).Error
			if err != nil {
				log.Printf("[Scheduler] DB error: %v", err)
				return
			}
			for _, r := range raffles {
				r.Status = models.RaffleStatusActive
				if err := s.DB.Save(&r).Error; err != nil {
					log.Printf("[Scheduler] Failed to activate raffle %s: %v", r.ID, err)
				} else {
					log.Printf("✅ Auto-activated raffle: %s", r.Name)
				}
			}
		}),
	)
}
