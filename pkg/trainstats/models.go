package trainstats

import "time"

const (
	ObjectTypeTrainStation      = "TrainStation"
	ObjectTypeTrainAnnouncement = "TrainAnnouncement"

	ActivityTypeDeparture = "Avgang"
	ActivityTypeArrival   = "Ankomst"
)

type TrainStation struct {
	LocationSignature      string `json:"LocationSignature"`
	AdvertisedLocationName string `json:"AdvertisedLocationName"`
}

type TrainAnnouncement struct {
	ActivityType             string    `json:"ActivityType"`
	AdvertisedTimeAtLocation time.Time `json:"AdvertisedTimeAtLocation"`
	AdvertisedTrainIdent     string    `json:"AdvertisedTrainIdent"`
	LocationSignature        string    `json:"LocationSignature"`
	TimeAtLocation           time.Time `json:"TimeAtLocation"`
	Canceled                 bool      `json:"Canceled"`
}

// DelayRecord is an announcement that has been reported at the station,
// with its delay in minutes against the advertised time.
type DelayRecord struct {
	LocationSignature        string    `json:"LocationSignature" csv:"location_signature" groups:"detailed"`
	AdvertisedTrainIdent     string    `json:"AdvertisedTrainIdent" csv:"train" groups:"detailed"`
	ActivityType             string    `json:"ActivityType" csv:"activity_type" groups:"chart,detailed"`
	AdvertisedTimeAtLocation time.Time `json:"AdvertisedTimeAtLocation" csv:"advertised_time" groups:"chart,detailed"`
	TimeAtLocation           time.Time `json:"TimeAtLocation" csv:"actual_time" groups:"detailed"`
	Delay                    float64   `json:"Delay" csv:"delay_minutes" groups:"chart,detailed"`
}

type Summary struct {
	LocationSignature string  `json:"LocationSignature" csv:"location_signature"`
	ActivityType      string  `json:"ActivityType" csv:"activity_type"`
	Count             int     `json:"Count" csv:"count"`
	MeanDelay         float64 `json:"MeanDelay" csv:"mean_delay"`
	MedianDelay       float64 `json:"MedianDelay" csv:"median_delay"`
	P90Delay          float64 `json:"P90Delay" csv:"p90_delay"`
	MaxDelay          float64 `json:"MaxDelay" csv:"max_delay"`
	Punctuality       float64 `json:"Punctuality" csv:"punctuality"`
}
