package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/trainstats/pkg/trainstats"
)

func StationsRouter(router fiber.Router, service *trainstats.Service) {
	router.Get("/", func(c *fiber.Ctx) error {
		stations, err := service.Stations(c.UserContext(), c.Query("search"))
		if err != nil {
			return sendError(c, err)
		}

		if stations == nil {
			stations = []trainstats.TrainStation{}
		}

		return c.JSON(stations)
	})
}
