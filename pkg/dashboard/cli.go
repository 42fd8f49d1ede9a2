package dashboard

import (
	"github.com/rs/zerolog/log"
	"github.com/travigo/trainstats/pkg/trainstats"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "dashboard",
		Usage: "Serves the train delay dashboard",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run dashboard web server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "listen",
						Value:   ":8080",
						Usage:   "listen target for the web server",
						EnvVars: []string{"TRAINSTATS_LISTEN"},
					},
				},
				Action: func(c *cli.Context) error {
					service, err := trainstats.NewServiceFromCLI(c)
					if err != nil {
						return err
					}

					log.Info().Str("listen", c.String("listen")).Msg("Starting dashboard")

					return SetupServer(c.String("listen"), service)
				},
			},
		},
	}
}
