package routes

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/travigo/trainstats/pkg/trafikverket"
	"github.com/travigo/trainstats/pkg/trainstats"
	"github.com/travigo/trainstats/pkg/util"
)

func sendError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError

	var transportError *trafikverket.TransportError
	var providerError *trafikverket.ProviderError

	switch {
	case errors.Is(err, trainstats.ErrInvalidWindow):
		status = fiber.StatusBadRequest
	case errors.As(err, &transportError), errors.As(err, &providerError), errors.Is(err, trafikverket.ErrEnvelopeShape):
		status = fiber.StatusBadGateway
	}

	if status >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Msg("Failed to query Trafikverket")
	}

	c.Status(status)
	return c.JSON(fiber.Map{
		"error": err.Error(),
	})
}

func listQuery(c *fiber.Ctx, key string) []string {
	var values []string

	for _, value := range strings.Split(c.Query(key), ",") {
		if value = strings.TrimSpace(value); value != "" {
			values = append(values, value)
		}
	}

	return values
}

func boolQuery(c *fiber.Ctx, key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(c.Query(key, strconv.FormatBool(defaultValue)))
	if err != nil {
		return defaultValue
	}

	return value
}

type stationSelection struct {
	Signatures []string
	Window     trainstats.Window
	Activities []string
}

func parseStationSelection(c *fiber.Ctx) (stationSelection, error) {
	window, err := trainstats.ParseWindow(c.Query("window", trainstats.DefaultWindow))
	if err != nil {
		return stationSelection{}, err
	}

	return stationSelection{
		Signatures: util.RemoveDuplicateStrings(listQuery(c, "stations"), nil),
		Window:     window,
		Activities: trainstats.Activities(boolQuery(c, "departures", true), boolQuery(c, "arrivals", true)),
	}, nil
}
