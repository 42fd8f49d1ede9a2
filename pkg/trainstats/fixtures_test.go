package trainstats

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/travigo/trainstats/pkg/trafikverket"
)

type fakeFetcher struct {
	mu        sync.Mutex
	questions []string
	respond   func(question string) (trafikverket.Result, error)
}

func (f *fakeFetcher) Fetch(ctx context.Context, question string) (trafikverket.Result, error) {
	f.mu.Lock()
	f.questions = append(f.questions, question)
	f.mu.Unlock()

	return f.respond(question)
}

func newTestService(respond func(question string) (trafikverket.Result, error)) (*Service, *fakeFetcher) {
	fetcher := &fakeFetcher{respond: respond}
	client := trafikverket.NewClient(trafikverket.Config{APIKey: "secret"})

	return NewService(client, fetcher), fetcher
}

func resultWith(objectType string, value string) trafikverket.Result {
	return trafikverket.Result{objectType: json.RawMessage(value)}
}

const stationsJSON = `[
	{"LocationSignature":"Cst","AdvertisedLocationName":"Stockholm C"},
	{"LocationSignature":"Sst","AdvertisedLocationName":"Stockholm Södra"},
	{"LocationSignature":"U","AdvertisedLocationName":"Uppsala C"},
	{"LocationSignature":"G","AdvertisedLocationName":"Göteborg C"}
]`

func announcementJSON(signature string, activity string, advertised time.Time, actual *time.Time) string {
	fields := []string{
		fmt.Sprintf(`"LocationSignature":%q`, signature),
		fmt.Sprintf(`"ActivityType":%q`, activity),
		fmt.Sprintf(`"AdvertisedTrainIdent":"%d"`, advertised.Hour()*100+advertised.Minute()),
		fmt.Sprintf(`"AdvertisedTimeAtLocation":%q`, advertised.Format("2006-01-02T15:04:05.000-07:00")),
	}
	if actual != nil {
		fields = append(fields, fmt.Sprintf(`"TimeAtLocation":%q`, actual.Format("2006-01-02T15:04:05.000-07:00")))
	}

	return "{" + strings.Join(fields, ",") + "}"
}

func at(hour int, minute int) time.Time {
	return time.Date(2024, time.March, 1, hour, minute, 0, 0, time.UTC)
}

func ptr[T any](v T) *T {
	return &v
}
