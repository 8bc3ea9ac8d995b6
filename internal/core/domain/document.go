package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DocumentStatus represents the lifecycle state of a travel document. The
// values are the literal strings the RekaTrack backend puts on the wire.
type DocumentStatus string

const (
	StatusNotSent   DocumentStatus = "Belum terkirim"
	StatusInTransit DocumentStatus = "Sedang dikirim"
	StatusDelivered DocumentStatus = "Terkirim"
)

// validTransitions defines the allowed state machine transitions. The
// lifecycle is strictly monotonic: no skipping, no reverse.
var validTransitions = map[DocumentStatus][]DocumentStatus{
	StatusNotSent:   {StatusInTransit},
	StatusInTransit: {StatusDelivered},
}

// CanTransitionTo reports whether a transition from s to next is valid.
func (s DocumentStatus) CanTransitionTo(next DocumentStatus) bool {
	for _, allowed := range validTransitions[s.Normalized()] {
		if allowed == next.Normalized() {
			return true
		}
	}
	return false
}

// Normalized maps a raw wire status onto one of the three canonical values,
// ignoring case and surrounding whitespace. Unknown statuses are returned
// trimmed but otherwise untouched.
func (s DocumentStatus) Normalized() DocumentStatus {
	trimmed := strings.TrimSpace(string(s))
	for _, known := range []DocumentStatus{StatusNotSent, StatusInTransit, StatusDelivered} {
		if strings.EqualFold(trimmed, string(known)) {
			return known
		}
	}
	return DocumentStatus(trimmed)
}

// Date is an issue date as the backend serialises it. Laravel emits plain
// dates for some records and full timestamps for others, so unmarshalling
// tries both.
type Date struct {
	time.Time
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw == "" {
		d.Time = time.Time{}
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("unsupported date format %q", raw)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.Time.IsZero() {
		return json.Marshal("")
	}
	return json.Marshal(d.Time.Format("2006-01-02"))
}

// Quantity tolerates the backend sending numeric fields either as JSON
// numbers or as strings ("10" vs 10).
type Quantity string

func (q *Quantity) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*q = Quantity(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*q = Quantity(n.String())
	return nil
}

// Unit is the measurement unit attached to a line item.
type Unit struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// DocumentItem is a single line item on a travel document.
type DocumentItem struct {
	ID       int      `json:"id"`
	ItemCode string   `json:"item_code"`
	ItemName string   `json:"item_name"`
	QtySend  Quantity `json:"qty_send"`
	QtyPO    Quantity `json:"qty_po,omitempty"`
	UnitID   int      `json:"unit_id"`
	Unit     *Unit    `json:"unit,omitempty"`
}

// TravelDocument is one shipment record. The remote API owns the entity; the
// client holds transient read-mostly copies.
type TravelDocument struct {
	ID              int            `json:"id"`
	DocumentNumber  string         `json:"no_travel_document"`
	IssueDate       Date           `json:"date_no_travel_document"`
	Destination     string         `json:"send_to"`
	Project         string         `json:"project"`
	Status          DocumentStatus `json:"status"`
	PONumber        string         `json:"po_number,omitempty"`
	ReferenceNumber string         `json:"reference_number,omitempty"`
	Items           []DocumentItem `json:"items,omitempty"`
}

// NumberMatches reports whether the document's business key equals number,
// compared case-insensitively. Document numbers are the external lookup key
// for manual tracking entry.
func (d TravelDocument) NumberMatches(number string) bool {
	return strings.EqualFold(strings.TrimSpace(d.DocumentNumber), strings.TrimSpace(number))
}
