package trainstats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDelays(t *testing.T) {
	records := Delays([]TrainAnnouncement{
		{
			LocationSignature:        "Cst",
			AdvertisedTrainIdent:     "521",
			ActivityType:             ActivityTypeDeparture,
			AdvertisedTimeAtLocation: at(10, 0),
			TimeAtLocation:           at(10, 7).Add(30e9),
		},
		{
			LocationSignature:        "Cst",
			AdvertisedTrainIdent:     "522",
			ActivityType:             ActivityTypeArrival,
			AdvertisedTimeAtLocation: at(11, 0),
			TimeAtLocation:           at(10, 58),
		},
		{
			LocationSignature:        "Cst",
			AdvertisedTrainIdent:     "523",
			ActivityType:             ActivityTypeArrival,
			AdvertisedTimeAtLocation: at(12, 0),
		},
	})

	require.Len(t, records, 2)

	assert.Equal(t, "Cst", records[0].LocationSignature)
	assert.Equal(t, "521", records[0].AdvertisedTrainIdent)
	assert.Equal(t, ActivityTypeDeparture, records[0].ActivityType)
	assert.True(t, records[0].AdvertisedTimeAtLocation.Equal(at(10, 0)))
	assert.InDelta(t, 7.5, records[0].Delay, 0.0001)

	assert.Equal(t, "522", records[1].AdvertisedTrainIdent)
	assert.InDelta(t, -2.0, records[1].Delay, 0.0001)
}

func TestFilterActivities(t *testing.T) {
	records := []DelayRecord{
		{AdvertisedTrainIdent: "1", ActivityType: ActivityTypeDeparture},
		{AdvertisedTrainIdent: "2", ActivityType: ActivityTypeArrival},
		{AdvertisedTrainIdent: "3", ActivityType: ActivityTypeDeparture},
	}

	departures := FilterActivities(append([]DelayRecord{}, records...), []string{ActivityTypeDeparture})
	require.Len(t, departures, 2)
	assert.Equal(t, "1", departures[0].AdvertisedTrainIdent)
	assert.Equal(t, "3", departures[1].AdvertisedTrainIdent)

	both := FilterActivities(append([]DelayRecord{}, records...), Activities(true, true))
	assert.Len(t, both, 3)

	none := FilterActivities(append([]DelayRecord{}, records...), Activities(false, false))
	assert.Empty(t, none)
}

func TestWhere(t *testing.T) {
	records := []DelayRecord{
		{AdvertisedTrainIdent: "1", ActivityType: ActivityTypeDeparture, Delay: 2},
		{AdvertisedTrainIdent: "2", ActivityType: ActivityTypeArrival, Delay: 9},
		{AdvertisedTrainIdent: "3", ActivityType: ActivityTypeDeparture, Delay: 12},
	}

	matching, err := Where(records, `Delay > 5 && ActivityType == "Avgang"`)
	require.NoError(t, err)
	require.Len(t, matching, 1)
	assert.Equal(t, "3", matching[0].AdvertisedTrainIdent)

	all, err := Where(records, " ")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestWhereInvalidExpression(t *testing.T) {
	records := []DelayRecord{{Delay: 2}}

	_, err := Where(records, "Delay +")
	assert.Error(t, err)

	_, err = Where(records, "Delay + 1")
	assert.Error(t, err)

	_, err = Where(records, "Platform == 3")
	assert.Error(t, err)
}
