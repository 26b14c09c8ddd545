// handlers/event_routes.go
package handlers

import (
	"errors"

	"league-ops-system/middleware"
	"league-ops-system/models"
	"league-ops-system/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupEventRoutes(app *fiber.App, eventService *services.EventService) {
	secured := app.Group("/s", middleware.UserContextMiddleware())

	secured.Get("/events", func(c *fiber.Ctx) error {
		events, err := eventService.ListEvents(models.EventStatus(c.Query("status")))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to list events",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"events": events})
	})

	secured.Get("/events/:id", func(c *fiber.Ctx) error {
		event, err := eventService.GetEvent(c.Params("id"))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "event not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load event",
				"cause": err.Error(),
			})
		}
		return c.JSON(event)
	})

	secured.Post("/events/:id/signups", func(c *fiber.Ctx) error {
		var req struct {
			PlayerID string `json:"player_id"`
		}
		if err := c.BodyParser(&req); err != nil || req.PlayerID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "player_id is required"})
		}
		signup, err := eventService.AddSignup(c.Params("id"), req.PlayerID)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrSignupsClosed):
				return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
			case errors.Is(err, gorm.ErrRecordNotFound):
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "event not found"})
			default:
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "failed to sign up",
					"cause": err.Error(),
				})
			}
		}
		return c.Status(fiber.StatusCreated).JSON(signup)
	})

	secured.Delete("/events/:id/signups/:playerId", func(c *fiber.Ctx) error {
		if err := eventService.RemoveSignup(c.Params("id"), c.Params("playerId")); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to remove signup",
				"cause": err.Error(),
			})
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	admin := secured.Group("/admin", middleware.AdminOnly())

	admin.Post("/events", func(c *fiber.Ctx) error {
		var event models.Event
		if err := c.BodyParser(&event); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		if event.Name == "" || event.StartTime.IsZero() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name and start_time are required"})
		}
		if err := eventService.CreateEvent(&event); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to create event",
				"cause": err.Error(),
			})
		}
		return c.Status(fiber.StatusCreated).JSON(event)
	})

	admin.Post("/events/:id/attendees", func(c *fiber.Ctx) error {
		var attendee models.EventAttendee
		if err := c.BodyParser(&attendee); err != nil || attendee.PlayerID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "player_id is required"})
		}
		if err := eventService.CheckIn(c.Params("id"), &attendee); err != nil {
			switch {
			case errors.Is(err, services.ErrAlreadyCheckedIn), errors.Is(err, services.ErrSignupsClosed):
				return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
			case errors.Is(err, gorm.ErrRecordNotFound):
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "event not found"})
			default:
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "failed to check in attendee",
					"cause": err.Error(),
				})
			}
		}
		return c.Status(fiber.StatusCreated).JSON(attendee)
	})

	admin.Patch("/events/:id/attendees/:playerId/stats", func(c *fiber.Ctx) error {
		var req struct {
			Kills     int64 `json:"kills"`
			Deaths    int64 `json:"deaths"`
			Headshots int64 `json:"headshots"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		err := eventService.UpdateAttendeeStats(c.Params("id"), c.Params("playerId"),
			req.Kills, req.Deaths, req.Headshots)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "attendee not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to update stats",
				"cause": err.Error(),
			})
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	// Finalize is the one-shot settlement trigger. The service refuses a
	// second invocation, so a double click comes back as 409.
	admin.Post("/events/:id/finalize", func(c *fiber.Ctx) error {
		result, err := eventService.FinalizeEvent(c.Params("id"))
		if err != nil {
			switch {
			case errors.Is(err, services.ErrAlreadySettled):
				return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
			case errors.Is(err, gorm.ErrRecordNotFound):
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "event not found"})
			default:
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "settlement failed",
					"cause": err.Error(),
				})
			}
		}
		return c.JSON(fiber.Map{
			"players_updated":  len(result.UpdatedPlayers),
			"match_records":    len(result.MatchRecords),
			"transactions":     result.Transactions,
			"badges_awarded":   len(result.AwardedBadges),
			"signups_cleared":  len(result.ClearedSignupIDs),
		})
	})

	admin.Post("/events/:id/cancel", func(c *fiber.Ctx) error {
		if err := eventService.CancelEvent(c.Params("id")); err != nil {
			if errors.Is(err, services.ErrAlreadySettled) {
				return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to cancel event",
				"cause": err.Error(),
			})
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}
