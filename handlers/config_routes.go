// handlers/config_routes.go
package handlers

import (
	"errors"
	"strconv"

	"league-ops-system/middleware"
	"league-ops-system/models"
	"league-ops-system/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupConfigRoutes(app *fiber.App, configService *services.ConfigService) {
	secured := app.Group("/s", middleware.UserContextMiddleware())

	// Read-only config is visible to every authenticated user — the
	// dashboard renders rank ladders and badge lists for players too.
	secured.Get("/ranks", func(c *fiber.Ctx) error {
		ranks, err := configService.ListRanks()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to list ranks",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"ranks": ranks})
	})

	secured.Get("/badges", func(c *fiber.Ctx) error {
		badges, err := configService.ListBadges()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to list badges",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"badges": badges})
	})

	secured.Get("/gear", func(c *fiber.Ctx) error {
		gear, err := configService.ListGear()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to list gear",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"gear": gear})
	})

	admin := secured.Group("/admin", middleware.AdminOnly())

	admin.Post("/ranks", func(c *fiber.Ctx) error {
		var rank models.Rank
		if err := c.BodyParser(&rank); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		if rank.Name == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
		}
		if err := configService.CreateRank(&rank); err != nil {
			if errors.Is(err, services.ErrDuplicateMinXP) || errors.Is(err, services.ErrNegativeMinXP) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to create rank",
				"cause": err.Error(),
			})
		}
		return c.Status(fiber.StatusCreated).JSON(rank)
	})

	admin.Delete("/ranks/:id", func(c *fiber.Ctx) error {
		if err := configService.DeleteRank(c.Params("id")); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to delete rank",
				"cause": err.Error(),
			})
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	admin.Post("/ranks/:id/tiers", func(c *fiber.Ctx) error {
		var tier models.Tier
		if err := c.BodyParser(&tier); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		if err := configService.AddTier(c.Params("id"), &tier); err != nil {
			if errors.Is(err, services.ErrDuplicateMinXP) || errors.Is(err, services.ErrNegativeMinXP) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to add tier",
				"cause": err.Error(),
			})
		}
		return c.Status(fiber.StatusCreated).JSON(tier)
	})

	admin.Post("/badges", func(c *fiber.Ctx) error {
		var badge models.Badge
		if err := c.BodyParser(&badge); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		if err := configService.CreateBadge(&badge); err != nil {
			if errors.Is(err, services.ErrInvalidCriteria) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to create badge",
				"cause": err.Error(),
			})
		}
		return c.Status(fiber.StatusCreated).JSON(badge)
	})

	admin.Post("/legendary-badges", func(c *fiber.Ctx) error {
		var badge models.LegendaryBadge
		if err := c.BodyParser(&badge); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		if err := configService.CreateLegendaryBadge(&badge); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to create legendary badge",
				"cause": err.Error(),
			})
		}
		return c.Status(fiber.StatusCreated).JSON(badge)
	})

	// Surfaces config problems (dangling rank-badge targets, ambiguous
	// tier thresholds) at edit time instead of only at evaluation time.
	admin.Get("/badges/validate", func(c *fiber.Ctx) error {
		warnings, err := configService.ValidateBadges()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "validation failed",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"warnings": warnings})
	})

	admin.Get("/rules", func(c *fiber.Ctx) error {
		rules, err := configService.ListRules()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to list rules",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"rules": rules})
	})

	admin.Patch("/rules/:code", func(c *fiber.Ctx) error {
		var req struct {
			Value int64 `json:"value"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		rule, err := configService.UpdateRule(c.Params("code"), req.Value)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "rule not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to update rule",
				"cause": err.Error(),
			})
		}
		return c.JSON(rule)
	})

	admin.Post("/gear", func(c *fiber.Ctx) error {
		var item models.GearItem
		if err := c.BodyParser(&item); err != nil || item.Name == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
		}
		if err := configService.CreateGearItem(&item); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to create gear item",
				"cause": err.Error(),
			})
		}
		return c.Status(fiber.StatusCreated).JSON(item)
	})

	admin.Post("/transactions", func(c *fiber.Ctx) error {
		var txn models.Transaction
		if err := c.BodyParser(&txn); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		if txn.Type == "" || txn.Amount == 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "type and amount are required"})
		}
		if err := configService.RecordTransaction(&txn); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to record transaction",
				"cause": err.Error(),
			})
		}
		return c.Status(fiber.StatusCreated).JSON(txn)
	})

	admin.Get("/transactions", func(c *fiber.Ctx) error {
		limit, _ := strconv.Atoi(c.Query("limit", "50"))
		txns, err := configService.ListTransactions(
			models.TransactionType(c.Query("type")),
			c.Query("event_id"),
			limit,
		)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to list transactions",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"transactions": txns})
	})
}
