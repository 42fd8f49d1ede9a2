package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/trainstats/pkg/trainstats"
)

func SummaryRouter(router fiber.Router, service *trainstats.Service) {
	router.Get("/", func(c *fiber.Ctx) error {
		selection, err := parseStationSelection(c)
		if err != nil {
			return sendError(c, err)
		}

		if len(selection.Signatures) == 0 {
			c.Status(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error": "At least one station must be selected",
			})
		}

		summaries, err := service.SummariseStations(c.UserContext(), selection.Signatures, selection.Window, selection.Activities)
		if err != nil {
			return sendError(c, err)
		}

		if summaries == nil {
			summaries = []trainstats.Summary{}
		}

		return c.JSON(summaries)
	})
}
