// handlers/player_routes.go
package handlers

import (
	"errors"
	"strconv"

	"league-ops-system/engine"
	"league-ops-system/middleware"
	"league-ops-system/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupPlayerRoutes(app *fiber.App, playerService *services.PlayerService) {
	secured := app.Group("/s", middleware.UserContextMiddleware())

	secured.Get("/players/:id/progress", func(c *fiber.Ctx) error {
		progress, err := playerService.GetProgress(c.Params("id"))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "player not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load progress",
				"cause": err.Error(),
			})
		}
		return c.JSON(progress)
	})

	secured.Get("/players/:id/history", func(c *fiber.Ctx) error {
		limit, _ := strconv.Atoi(c.Query("limit", "20"))
		records, err := playerService.GetMatchHistory(c.Params("id"), limit)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load match history",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"match_history": records})
	})

	secured.Get("/players/:id/adjustments", func(c *fiber.Ctx) error {
		limit, _ := strconv.Atoi(c.Query("limit", "20"))
		adjustments, err := playerService.GetAdjustments(c.Params("id"), limit)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load adjustments",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"xp_adjustments": adjustments})
	})

	admin := secured.Group("/admin", middleware.AdminOnly())

	admin.Post("/players/:id/adjustments", func(c *fiber.Ctx) error {
		var req struct {
			Amount int64  `json:"amount"`
			Reason string `json:"reason"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}

		appliedBy, _ := c.Locals("user_id").(string)
		player, err := playerService.AdjustXP(c.Params("id"), req.Amount, req.Reason, appliedBy)
		if err != nil {
			switch {
			case errors.Is(err, engine.ErrEmptyReason):
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
			case errors.Is(err, gorm.ErrRecordNotFound):
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "player not found"})
			default:
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "failed to apply adjustment",
					"cause": err.Error(),
				})
			}
		}
		return c.JSON(player)
	})

	admin.Post("/players/:id/badges/:badgeId", func(c *fiber.Ctx) error {
		pb, err := playerService.AwardBadge(c.Params("id"), c.Params("badgeId"))
		if err != nil {
			switch {
			case errors.Is(err, services.ErrNotAdminAwarded):
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
			case errors.Is(err, services.ErrBadgeAlreadyHeld):
				return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
			case errors.Is(err, gorm.ErrRecordNotFound):
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "badge not found"})
			default:
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "failed to award badge",
					"cause": err.Error(),
				})
			}
		}
		return c.Status(fiber.StatusCreated).JSON(pb)
	})

	admin.Post("/players/:id/legendary/:legendaryId", func(c *fiber.Ctx) error {
		grantedBy, _ := c.Locals("user_id").(string)
		grant, err := playerService.GrantLegendaryBadge(c.Params("id"), c.Params("legendaryId"), grantedBy)
		if err != nil {
			if errors.Is(err, services.ErrBadgeAlreadyHeld) {
				return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to grant legendary badge",
				"cause": err.Error(),
			})
		}
		return c.Status(fiber.StatusCreated).JSON(grant)
	})

	admin.Delete("/players/:id/legendary/:legendaryId", func(c *fiber.Ctx) error {
		if err := playerService.RevokeLegendaryBadge(c.Params("id"), c.Params("legendaryId")); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "grant not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to revoke legendary badge",
				"cause": err.Error(),
			})
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}
