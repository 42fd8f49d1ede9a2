package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/travigo/trainstats/pkg/trainstats"
)

func DelaysRouter(router fiber.Router, service *trainstats.Service) {
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

		records, err := service.StationDelays(c.UserContext(), selection.Signatures, selection.Window, selection.Activities)
		if err != nil {
			return sendError(c, err)
		}

		records, err = trainstats.Where(records, c.Query("where"))
		if err != nil {
			c.Status(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		if records == nil {
			records = []trainstats.DelayRecord{}
		}

		group := c.Query("detail", "chart")
		if group != "chart" && group != "detailed" {
			c.Status(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error": "Parameter detail should be chart or detailed",
			})
		}

		recordsReduced, err := sheriff.Marshal(&sheriff.Options{
			Groups: []string{group},
		}, records)
		if err != nil {
			c.Status(fiber.StatusInternalServerError)
			return c.JSON(fiber.Map{
				"error": "Sherrif could not reduce delay records",
			})
		}

		return c.JSON(recordsReduced)
	})
}
