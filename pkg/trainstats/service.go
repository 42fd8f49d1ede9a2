package trainstats

import (
	"context"
	"strings"
	"time"

	"github.com/travigo/trainstats/pkg/trafikverket"
	"golang.org/x/exp/slices"
)

type QuestionBuilder interface {
	CreateQuestion(q trafikverket.Question) (string, error)
}

type Service struct {
	Questions QuestionBuilder
	Fetcher   trafikverket.Fetcher
}

func NewService(client *trafikverket.Client, fetcher trafikverket.Fetcher) *Service {
	if fetcher == nil {
		fetcher = client
	}

	return &Service{
		Questions: client,
		Fetcher:   fetcher,
	}
}

func (s *Service) ask(ctx context.Context, q trafikverket.Question) (trafikverket.Result, error) {
	question, err := s.Questions.CreateQuestion(q)
	if err != nil {
		return nil, err
	}

	result, err := s.Fetcher.Fetch(ctx, question)
	if err != nil {
		return nil, err
	}

	if providerError := result.ProviderError(); providerError != nil {
		return nil, providerError
	}

	return result, nil
}

// Stations lists train stations whose advertised name contains search. An
// empty search returns every station.
func (s *Service) Stations(ctx context.Context, search string) ([]TrainStation, error) {
	result, err := s.ask(ctx, trafikverket.Question{
		ObjectType:    ObjectTypeTrainStation,
		Includes:      []string{"LocationSignature", "AdvertisedLocationName"},
		Namespace:     "rail.infrastructure",
		SchemaVersion: "1.5",
		Limit:         5000,
	})
	if err != nil {
		return nil, err
	}

	var stations []TrainStation
	if err := result.Decode(ObjectTypeTrainStation, &stations); err != nil {
		return nil, err
	}

	if search == "" {
		return stations, nil
	}

	var matching []TrainStation
	for _, station := range stations {
		if strings.Contains(station.AdvertisedLocationName, search) {
			matching = append(matching, station)
		}
	}

	return matching, nil
}

// ResolveSignatures maps exact advertised station names to their location
// signatures, in station list order.
func (s *Service) ResolveSignatures(ctx context.Context, names []string) ([]string, error) {
	if len(names) == 0 {
		return nil, nil
	}

	stations, err := s.Stations(ctx, "")
	if err != nil {
		return nil, err
	}

	var signatures []string
	for _, station := range stations {
		if slices.Contains(names, station.AdvertisedLocationName) {
			signatures = append(signatures, station.LocationSignature)
		}
	}

	return signatures, nil
}

// Announcements fetches the announcements advertised at any of the given
// stations within the window. It returns nil without error when the provider
// has no announcements to report.
func (s *Service) Announcements(ctx context.Context, signatures []string, window Window) ([]TrainAnnouncement, error) {
	if len(signatures) == 0 {
		return nil, nil
	}

	var locationFilters []trafikverket.Filter
	for _, signature := range signatures {
		locationFilters = append(locationFilters, trafikverket.Eq("LocationSignature", signature))
	}

	result, err := s.ask(ctx, trafikverket.Question{
		ObjectType: ObjectTypeTrainAnnouncement,
		Filters: []trafikverket.Filter{
			trafikverket.Gt("AdvertisedTimeAtLocation", window.DateAdd(time.Now())),
			trafikverket.Lt("AdvertisedTimeAtLocation", "$now"),
			trafikverket.OrAll(locationFilters...),
		},
		Includes: []string{
			"ActivityType",
			"AdvertisedTimeAtLocation",
			"AdvertisedTrainIdent",
			"LocationSignature",
			"TimeAtLocation",
			"Canceled",
		},
		SchemaVersion: "1.9",
		Limit:         1000,
	})
	if err != nil {
		return nil, err
	}

	if !result.Has(ObjectTypeTrainAnnouncement) {
		return nil, nil
	}

	var announcements []TrainAnnouncement
	if err := result.Decode(ObjectTypeTrainAnnouncement, &announcements); err != nil {
		return nil, err
	}

	return announcements, nil
}

// StationDelays fetches announcements for the stations and reduces them to
// delay records of the requested activity types.
func (s *Service) StationDelays(ctx context.Context, signatures []string, window Window, activities []string) ([]DelayRecord, error) {
	announcements, err := s.Announcements(ctx, signatures, window)
	if err != nil {
		return nil, err
	}

	return FilterActivities(Delays(announcements), activities), nil
}
