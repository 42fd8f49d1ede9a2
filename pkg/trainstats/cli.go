package trainstats

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/kr/pretty"
	"github.com/rs/zerolog/log"
	"github.com/travigo/trainstats/pkg/redis_client"
	"github.com/travigo/trainstats/pkg/trafikverket"
	"github.com/travigo/trainstats/pkg/util"
	"github.com/urfave/cli/v2"
)

// Flags configure the provider client. They are registered on the app so every
// command that talks to Trafikverket can read them.
var Flags = []cli.Flag{
	&cli.StringFlag{
		Name:    "api-key",
		Usage:   "Trafikverket API key",
		EnvVars: []string{"TRAFIKVERKET_KEY"},
	},
	&cli.StringFlag{
		Name:    "endpoint",
		Value:   trafikverket.DefaultEndpoint,
		Usage:   "Trafikverket data endpoint",
		EnvVars: []string{"TRAFIKVERKET_URL"},
	},
	&cli.BoolFlag{
		Name:    "cache",
		Usage:   "cache provider responses in redis",
		EnvVars: []string{"TRAINSTATS_CACHE"},
	},
	&cli.DurationFlag{
		Name:    "cache-ttl",
		Value:   trafikverket.DefaultCacheExpiration,
		Usage:   "how long cached provider responses stay fresh",
		EnvVars: []string{"TRAINSTATS_CACHE_TTL"},
	},
}

var stationSelectionFlags = []cli.Flag{
	&cli.StringSliceFlag{
		Name:  "station",
		Usage: "advertised station name, may be repeated",
	},
	&cli.StringSliceFlag{
		Name:  "signature",
		Usage: "station location signature, may be repeated",
	},
	&cli.BoolFlag{
		Name:  "departures",
		Value: true,
		Usage: "include departures",
	},
	&cli.BoolFlag{
		Name:  "arrivals",
		Value: true,
		Usage: "include arrivals",
	},
	&cli.StringFlag{
		Name:  "window",
		Value: DefaultWindow,
		Usage: "ISO8601 duration to look back from now",
	},
}

func NewServiceFromCLI(c *cli.Context) (*Service, error) {
	client := clientFromCLI(c)

	fetcher, err := fetcherFromCLI(c, client)
	if err != nil {
		return nil, err
	}

	return NewService(client, fetcher), nil
}

func clientFromCLI(c *cli.Context) *trafikverket.Client {
	return trafikverket.NewClient(trafikverket.Config{
		APIKey:   c.String("api-key"),
		Endpoint: c.String("endpoint"),
	})
}

// fetcherFromCLI puts the redis response cache in front of client when the
// cache flag is set.
func fetcherFromCLI(c *cli.Context, client *trafikverket.Client) (trafikverket.Fetcher, error) {
	if !c.Bool("cache") {
		return client, nil
	}

	if err := redis_client.Connect(); err != nil {
		return nil, err
	}

	log.Debug().Dur("ttl", c.Duration("cache-ttl")).Msg("Caching provider responses in redis")

	return trafikverket.NewRedisCachedFetcher(client, redis_client.Client, c.Duration("cache-ttl")), nil
}

func Activities(departures bool, arrivals bool) []string {
	var activities []string

	if departures {
		activities = append(activities, ActivityTypeDeparture)
	}
	if arrivals {
		activities = append(activities, ActivityTypeArrival)
	}

	return activities
}

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "trains",
		Usage: "Query Trafikverket train stations and delays",
		Subcommands: []*cli.Command{
			{
				Name:  "stations",
				Usage: "list train stations and their location signatures",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "search",
						Usage: "only stations whose name contains this text",
					},
				},
				Action: func(c *cli.Context) error {
					service, err := NewServiceFromCLI(c)
					if err != nil {
						return err
					}

					stations, err := service.Stations(c.Context, c.String("search"))
					if err != nil {
						return err
					}

					return WriteStationTable(os.Stdout, stations)
				},
			},
			{
				Name:  "delays",
				Usage: "list delays of trains at the selected stations",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:  "where",
						Usage: "expression records must match, eg. 'Delay > 5'",
					},
					&cli.StringFlag{
						Name:  "format",
						Value: "table",
						Usage: "output format: table, csv or json",
					},
				}, stationSelectionFlags...),
				Action: func(c *cli.Context) error {
					service, err := NewServiceFromCLI(c)
					if err != nil {
						return err
					}

					signatures, window, err := selectionFromCLI(c, service)
					if err != nil {
						return err
					}

					records, err := service.StationDelays(c.Context, signatures, window, Activities(c.Bool("departures"), c.Bool("arrivals")))
					if err != nil {
						return err
					}

					records, err = Where(records, c.String("where"))
					if err != nil {
						return err
					}

					if len(records) == 0 {
						log.Warn().Strs("signatures", signatures).Msg("No data found")
						return nil
					}

					log.Debug().Int("records", len(records)).Msg("Retrieved delays")

					return writeRecords(os.Stdout, c.String("format"), records)
				},
			},
			{
				Name:  "summary",
				Usage: "summarise delays per station and activity",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:  "format",
						Value: "table",
						Usage: "output format: table or csv",
					},
				}, stationSelectionFlags...),
				Action: func(c *cli.Context) error {
					service, err := NewServiceFromCLI(c)
					if err != nil {
						return err
					}

					signatures, window, err := selectionFromCLI(c, service)
					if err != nil {
						return err
					}

					summaries, err := service.SummariseStations(c.Context, signatures, window, Activities(c.Bool("departures"), c.Bool("arrivals")))
					if err != nil {
						return err
					}

					if c.String("format") == "csv" {
						return WriteSummaryCSV(os.Stdout, summaries)
					}

					return WriteSummaryTable(os.Stdout, summaries)
				},
			},
			{
				Name:  "question",
				Usage: "build a raw question and optionally send it",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "object-type",
						Usage:    "object type to query, eg. TrainAnnouncement",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "namespace",
						Usage: "object type namespace",
					},
					&cli.StringFlag{
						Name:  "schema-version",
						Value: trafikverket.DefaultSchemaVersion,
						Usage: "object type schema version",
					},
					&cli.IntFlag{
						Name:  "limit",
						Value: trafikverket.DefaultLimit,
						Usage: "maximum number of objects returned",
					},
					&cli.StringSliceFlag{
						Name:  "include",
						Usage: "field to include, may be repeated",
					},
					&cli.StringSliceFlag{
						Name:  "filter",
						Usage: "comparison as OPERATOR:name=value, eg. EQ:LocationSignature=Cst",
					},
					&cli.BoolFlag{
						Name:  "or",
						Usage: "combine all filters into a single OR",
					},
					&cli.BoolFlag{
						Name:  "fetch",
						Usage: "send the question and print the result",
					},
				},
				Action: func(c *cli.Context) error {
					client := clientFromCLI(c)

					var filters []trafikverket.Filter
					for _, value := range c.StringSlice("filter") {
						filter, err := ParseComparison(value)
						if err != nil {
							return err
						}

						filters = append(filters, filter)
					}

					if c.Bool("or") && len(filters) > 0 {
						filters = []trafikverket.Filter{trafikverket.OrAll(filters...)}
					}

					question, err := client.CreateQuestion(trafikverket.Question{
						ObjectType:    c.String("object-type"),
						Filters:       filters,
						Includes:      c.StringSlice("include"),
						Namespace:     c.String("namespace"),
						SchemaVersion: c.String("schema-version"),
						Limit:         c.Int("limit"),
					})
					if err != nil {
						return err
					}

					if !c.Bool("fetch") {
						fmt.Print(question)
						return nil
					}

					fetcher, err := fetcherFromCLI(c, client)
					if err != nil {
						return err
					}

					result, err := fetcher.Fetch(c.Context, question)
					if err != nil {
						return err
					}

					pretty.Println(decodeResult(result))

					return nil
				},
			},
		},
	}
}

var ErrInvalidComparison = errors.New("comparison must look like OPERATOR:name=value")

// ParseComparison reads a comparison written as OPERATOR:name=value.
func ParseComparison(value string) (trafikverket.Comparison, error) {
	operator, rest, found := strings.Cut(value, ":")
	if !found || operator == "" {
		return trafikverket.Comparison{}, ErrInvalidComparison
	}

	name, fieldValue, found := strings.Cut(rest, "=")
	if !found || name == "" {
		return trafikverket.Comparison{}, ErrInvalidComparison
	}

	return trafikverket.NewComparison(strings.ToUpper(operator), name, fieldValue), nil
}

// decodeResult expands each object type for printing. Values that are not
// valid JSON are kept as their raw text.
func decodeResult(result trafikverket.Result) map[string]any {
	decoded := map[string]any{}

	for key, value := range result {
		var v any
		if err := json.Unmarshal(value, &v); err != nil {
			decoded[key] = string(value)
			continue
		}

		decoded[key] = v
	}

	return decoded
}

func selectionFromCLI(c *cli.Context, service *Service) ([]string, Window, error) {
	window, err := ParseWindow(c.String("window"))
	if err != nil {
		return nil, Window{}, err
	}

	signatures, err := service.ResolveSignatures(c.Context, c.StringSlice("station"))
	if err != nil {
		return nil, Window{}, err
	}

	signatures = util.RemoveDuplicateStrings(append(signatures, c.StringSlice("signature")...), nil)

	if len(signatures) == 0 {
		return nil, Window{}, errors.New("select at least one station with --station or --signature")
	}

	return signatures, window, nil
}

func writeRecords(w io.Writer, format string, records []DelayRecord) error {
	switch format {
	case "csv":
		return WriteCSV(w, records)
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(records)
	case "table":
		return WriteTable(w, records, time.Local)
	default:
		return fmt.Errorf("unknown format %s", format)
	}
}
