package trainstats

import (
	"strings"

	"github.com/expr-lang/expr"
	"github.com/jinzhu/copier"
	"github.com/travigo/trainstats/pkg/util"
	"golang.org/x/exp/slices"
)

// Delays converts announcements into delay records. Announcements the train
// has not yet been reported at carry no delay and are left out.
func Delays(announcements []TrainAnnouncement) []DelayRecord {
	var records []DelayRecord

	for _, announcement := range announcements {
		if announcement.TimeAtLocation.IsZero() || announcement.AdvertisedTimeAtLocation.IsZero() {
			continue
		}

		var record DelayRecord
		if err := copier.Copy(&record, &announcement); err != nil {
			continue
		}

		record.Delay = announcement.TimeAtLocation.Sub(announcement.AdvertisedTimeAtLocation).Seconds() / 60

		records = append(records, record)
	}

	return records
}

func FilterActivities(records []DelayRecord, activities []string) []DelayRecord {
	util.InPlaceFilter(&records, func(record DelayRecord) bool {
		return slices.Contains(activities, record.ActivityType)
	})

	return records
}

// Where keeps the records for which the boolean expression holds, for example
// `Delay > 5 && ActivityType == "Avgang"`.
func Where(records []DelayRecord, expression string) ([]DelayRecord, error) {
	if strings.TrimSpace(expression) == "" {
		return records, nil
	}

	program, err := expr.Compile(expression, expr.Env(DelayRecord{}), expr.AsBool())
	if err != nil {
		return nil, err
	}

	var matching []DelayRecord
	for _, record := range records {
		output, err := expr.Run(program, record)
		if err != nil {
			return nil, err
		}

		if output.(bool) {
			matching = append(matching, record)
		}
	}

	return matching, nil
}
