package trainstats

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/gocarina/gocsv"
)

const tableTimeFormat = "2006-01-02 15:04"

func WriteCSV(w io.Writer, records []DelayRecord) error {
	return gocsv.Marshal(&records, w)
}

func WriteSummaryCSV(w io.Writer, summaries []Summary) error {
	return gocsv.Marshal(&summaries, w)
}

func WriteTable(w io.Writer, records []DelayRecord, location *time.Location) error {
	tw := tabwriter.NewWriter(w, 5, 3, 3, ' ', 0)

	fmt.Fprintln(tw, "Station\tTrain\tActivity\tAdvertised\tActual\tDelay")
	for _, record := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%.1f\n",
			record.LocationSignature,
			record.AdvertisedTrainIdent,
			record.ActivityType,
			record.AdvertisedTimeAtLocation.In(location).Format(tableTimeFormat),
			record.TimeAtLocation.In(location).Format(tableTimeFormat),
			record.Delay,
		)
	}

	return tw.Flush()
}

func WriteSummaryTable(w io.Writer, summaries []Summary) error {
	tw := tabwriter.NewWriter(w, 5, 3, 3, ' ', 0)

	fmt.Fprintln(tw, "Station\tActivity\tCount\tMean\tMedian\tP90\tMax\tPunctuality")
	for _, summary := range summaries {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%.1f\t%.1f\t%.1f\t%.1f\t%.0f%%\n",
			summary.LocationSignature,
			summary.ActivityType,
			summary.Count,
			summary.MeanDelay,
			summary.MedianDelay,
			summary.P90Delay,
			summary.MaxDelay,
			summary.Punctuality*100,
		)
	}

	return tw.Flush()
}

func WriteStationTable(w io.Writer, stations []TrainStation) error {
	tw := tabwriter.NewWriter(w, 5, 3, 3, ' ', 0)

	fmt.Fprintln(tw, "Signature\tName")
	for _, station := range stations {
		fmt.Fprintf(tw, "%s\t%s\n", station.LocationSignature, station.AdvertisedLocationName)
	}

	return tw.Flush()
}
