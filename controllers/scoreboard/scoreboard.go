package scoreboardController

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"lms/database"
	"lms/middleware"
	"lms/services/scoreboard"
)

// GetScoreboard returns all active users ordered by score. Served from the
// cache when one is configured.
func GetScoreboard(c *fiber.Ctx) error {
	if cached := scoreboard.CachedList(c.Context()); cached != nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Scoreboard retrieved successfully!", cached)
	}

	entries, err := scoreboard.List(database.Database.Db)
	if err != nil {
		log.Printf("Error fetching scoreboard: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch scoreboard!", nil)
	}

	scoreboard.StoreList(c.Context(), entries)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Scoreboard retrieved successfully!", entries)
}
