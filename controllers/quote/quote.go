package quoteController

import (
	"log"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/gofiber/fiber/v2"

	"lms/config"
	"lms/middleware"
)

var quoteClient = resty.New().SetTimeout(5 * time.Second)

type zenQuote struct {
	Quote  string `json:"q"`
	Author string `json:"a"`
}

// GetDailyQuote proxies the zen quotes API so the frontend never calls it
// cross-origin.
func GetDailyQuote(c *fiber.Ctx) error {
	var quotes []zenQuote

	resp, err := quoteClient.R().
		SetResult(&quotes).
		Get(config.AppConfig.ZenQuoteURL)
	if err != nil {
		log.Printf("Error fetching daily quote: %v", err)
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Failed to fetch quote!", nil)
	}
	if resp.IsError() || len(quotes) == 0 {
		log.Printf("Quote API returned status %d with %d quotes", resp.StatusCode(), len(quotes))
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Failed to fetch quote!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quote retrieved successfully!", fiber.Map{
		"quote":  quotes[0].Quote,
		"author": quotes[0].Author,
	})
}
