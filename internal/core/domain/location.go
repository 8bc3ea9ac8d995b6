package domain

// Coordinates represents a geographic point.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// LocationSample is the payload posted to /send-location. The wire contract
// takes an array of document ids, though clients always send a singleton.
// Samples are ephemeral: never persisted client-side beyond transmission.
type LocationSample struct {
	DocumentIDs []int   `json:"travel_document_id"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

// NewLocationSample builds a singleton sample for one document.
func NewLocationSample(documentID int, c Coordinates) LocationSample {
	return LocationSample{
		DocumentIDs: []int{documentID},
		Latitude:    c.Latitude,
		Longitude:   c.Longitude,
	}
}
