package trainstats

import (
	"context"
	"strings"

	"github.com/montanaflynn/stats"
	"github.com/sourcegraph/conc/pool"
	"golang.org/x/exp/slices"
)

// PunctualityThreshold is the delay in minutes up to which a train still
// counts as on time.
const PunctualityThreshold = 5.0

const maxConcurrentStations = 4

// Summarise groups the records per station and activity type.
func Summarise(records []DelayRecord) []Summary {
	type groupKey struct {
		locationSignature string
		activityType      string
	}

	groups := map[groupKey]stats.Float64Data{}
	var keys []groupKey

	for _, record := range records {
		key := groupKey{record.LocationSignature, record.ActivityType}
		if _, exists := groups[key]; !exists {
			keys = append(keys, key)
		}
		groups[key] = append(groups[key], record.Delay)
	}

	var summaries []Summary
	for _, key := range keys {
		delays := groups[key]

		mean, _ := stats.Mean(delays)
		median, _ := stats.Median(delays)
		maxDelay, _ := stats.Max(delays)
		p90, err := stats.Percentile(delays, 90)
		if err != nil {
			p90 = maxDelay
		}

		onTime := 0
		for _, delay := range delays {
			if delay <= PunctualityThreshold {
				onTime++
			}
		}

		summaries = append(summaries, Summary{
			LocationSignature: key.locationSignature,
			ActivityType:      key.activityType,
			Count:             len(delays),
			MeanDelay:         mean,
			MedianDelay:       median,
			P90Delay:          p90,
			MaxDelay:          maxDelay,
			Punctuality:       float64(onTime) / float64(len(delays)),
		})
	}

	sortSummaries(summaries)

	return summaries
}

// SummariseStations asks one question per station so a slow or empty station
// does not hold up the others.
func (s *Service) SummariseStations(ctx context.Context, signatures []string, window Window, activities []string) ([]Summary, error) {
	p := pool.NewWithResults[[]Summary]().
		WithContext(ctx).
		WithCancelOnError().
		WithMaxGoroutines(maxConcurrentStations)

	for _, signature := range signatures {
		signature := signature
		p.Go(func(ctx context.Context) ([]Summary, error) {
			records, err := s.StationDelays(ctx, []string{signature}, window, activities)
			if err != nil {
				return nil, err
			}

			return Summarise(records), nil
		})
	}

	results, err := p.Wait()
	if err != nil {
		return nil, err
	}

	var summaries []Summary
	for _, stationSummaries := range results {
		summaries = append(summaries, stationSummaries...)
	}

	sortSummaries(summaries)

	return summaries, nil
}

func sortSummaries(summaries []Summary) {
	slices.SortFunc(summaries, func(a, b Summary) int {
		if c := strings.Compare(a.LocationSignature, b.LocationSignature); c != 0 {
			return c
		}
		return strings.Compare(a.ActivityType, b.ActivityType)
	})
}
