package dashboard

import (
	"embed"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/travigo/trainstats/pkg/dashboard/routes"
	"github.com/travigo/trainstats/pkg/trainstats"
)

//go:embed static
var staticFiles embed.FS

func NewApp(service *trainstats.Service) *fiber.App {
	webApp := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	webApp.Use(NewLogger())

	group := webApp.Group("/api")

	group.Get("version", routes.APIVersion)

	routes.StationsRouter(group.Group("/stations"), service)
	routes.DelaysRouter(group.Group("/delays"), service)
	routes.SummaryRouter(group.Group("/summary"), service)

	webApp.Use("/", filesystem.New(filesystem.Config{
		Root:       http.FS(staticFiles),
		PathPrefix: "static",
		Index:      "index.html",
	}))

	return webApp
}

func SetupServer(listen string, service *trainstats.Service) error {
	return NewApp(service).Listen(listen)
}
