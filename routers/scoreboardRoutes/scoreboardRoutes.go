package scoreboardRoutes

import (
	quoteControllers "lms/controllers/quote"
	scoreboardControllers "lms/controllers/scoreboard"
	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupScoreboardRoutes(app *fiber.App) {
	app.Get("/scoreboard", middleware.JWTMiddleware, scoreboardControllers.GetScoreboard)
	app.Get("/quote", middleware.JWTMiddleware, quoteControllers.GetDailyQuote)
}
