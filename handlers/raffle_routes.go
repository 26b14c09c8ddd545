// handlers/raffle_routes.go
package handlers

import (
	"errors"

	"league-ops-system/middleware"
	"league-ops-system/models"
	"league-ops-system/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRaffleRoutes(app *fiber.App, raffleService *services.RaffleService) {
	secured := app.Group("/s", middleware.UserContextMiddleware())

	secured.Get("/raffles", func(c *fiber.Ctx) error {
		raffles, err := raffleService.ListRaffles(models.RaffleStatus(c.Query("status")))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to list raffles",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"raffles": raffles})
	})

	secured.Get("/raffles/:id", func(c *fiber.Ctx) error {
		raffle, err := raffleService.GetRaffle(c.Params("id"))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "raffle not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load raffle",
				"cause": err.Error(),
			})
		}
		return c.JSON(raffle)
	})

	secured.Post("/raffles/:id/tickets", func(c *fiber.Ctx) error {
		var req struct {
			PlayerID string `json:"player_id"`
		}
		if err := c.BodyParser(&req); err != nil || req.PlayerID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "player_id is required"})
		}
		ticket, err := raffleService.BuyTicket(c.Params("id"), req.PlayerID)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrRaffleNotActive):
				return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
			case errors.Is(err, gorm.ErrRecordNotFound):
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "raffle not found"})
			default:
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "failed to buy ticket",
					"cause": err.Error(),
				})
			}
		}
		return c.Status(fiber.StatusCreated).JSON(ticket)
	})

	admin := secured.Group("/admin", middleware.AdminOnly())

	admin.Post("/raffles", func(c *fiber.Ctx) error {
		var raffle models.Raffle
		if err := c.BodyParser(&raffle); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		if raffle.Name == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
		}
		if err := raffleService.CreateRaffle(&raffle); err != nil {
			if errors.Is(err, services.ErrInvalidPrizeList) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to create raffle",
				"cause": err.Error(),
			})
		}
		return c.Status(fiber.StatusCreated).JSON(raffle)
	})

	// Draw is the one-shot winner selection. The service refuses a second
	// invocation and an empty ticket pool.
	admin.Post("/raffles/:id/draw", func(c *fiber.Ctx) error {
		winners, err := raffleService.DrawWinners(c.Params("id"))
		if err != nil {
			switch {
			case errors.Is(err, services.ErrAlreadyDrawn):
				return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
			case errors.Is(err, services.ErrNoTickets):
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
			case errors.Is(err, gorm.ErrRecordNotFound):
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "raffle not found"})
			default:
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "draw failed",
					"cause": err.Error(),
				})
			}
		}
		return c.JSON(fiber.Map{"winners": winners})
	})
}
