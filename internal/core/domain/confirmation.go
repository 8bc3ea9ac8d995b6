package domain

import "time"

// DeliveryConfirmation is the proof-of-delivery record created exactly once
// per document at completion time. PhotoPath is the server-assigned path
// returned by the photo upload, never a local file path.
type DeliveryConfirmation struct {
	DocumentID   int       `json:"travel_document_id,omitempty"`
	ReceiverName string    `json:"receiver_name"`
	ReceivedAt   time.Time `json:"received_at"`
	Note         string    `json:"note,omitempty"`
	PhotoPath    string    `json:"photo_path"`
}

// CompletionRequest is the payload posted to /complete-tracking. It carries
// the confirmation plus the final location sample in one atomic request.
type CompletionRequest struct {
	DocumentIDs  []int     `json:"travel_document_id"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	ReceiverName string    `json:"receiver_name"`
	ReceivedAt   time.Time `json:"received_at"`
	Note         string    `json:"note"`
	PhotoPath    string    `json:"photo_path"`
}
