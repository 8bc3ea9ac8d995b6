package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from DocumentStatus
		to   DocumentStatus
		want bool
	}{
		{StatusNotSent, StatusInTransit, true},
		{StatusInTransit, StatusDelivered, true},
		{StatusNotSent, StatusDelivered, false},
		{StatusInTransit, StatusNotSent, false},
		{StatusDelivered, StatusInTransit, false},
		{StatusDelivered, StatusNotSent, false},
		{StatusNotSent, StatusNotSent, false},
	}
	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
			t.Errorf("%s -> %s = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestStatusTransitionsIgnoreCase(t *testing.T) {
	if !DocumentStatus("belum terkirim").CanTransitionTo("SEDANG DIKIRIM") {
		t.Fatal("case-insensitive transition rejected")
	}
	if !DocumentStatus(" Sedang dikirim ").CanTransitionTo(StatusDelivered) {
		t.Fatal("whitespace-padded transition rejected")
	}
}

func TestStatusNormalized(t *testing.T) {
	tests := []struct {
		in   DocumentStatus
		want DocumentStatus
	}{
		{"Belum terkirim", StatusNotSent},
		{"belum terkirim", StatusNotSent},
		{"  TERKIRIM  ", StatusDelivered},
		{"sedang dikirim", StatusInTransit},
		{"status aneh", "status aneh"},
	}
	for _, tt := range tests {
		if got := tt.in.Normalized(); got != tt.want {
			t.Errorf("Normalized(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDateUnmarshalAcceptsBackendFormats(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want time.Time
	}{
		{"plain date", `"2026-08-28"`, time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)},
		{"datetime", `"2026-08-28 14:30:00"`, time.Date(2026, 8, 28, 14, 30, 0, 0, time.UTC)},
		{"rfc3339", `"2026-08-28T14:30:00Z"`, time.Date(2026, 8, 28, 14, 30, 0, 0, time.UTC)},
		{"empty means zero", `""`, time.Time{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			if err := json.Unmarshal([]byte(tt.raw), &d); err != nil {
				t.Fatalf("unmarshal %s: %v", tt.raw, err)
			}
			if !d.Time.Equal(tt.want) {
				t.Fatalf("got %v, want %v", d.Time, tt.want)
			}
		})
	}

	var d Date
	if err := json.Unmarshal([]byte(`"28/08/2026"`), &d); err == nil {
		t.Fatal("unsupported format accepted")
	}
}

func TestQuantityUnmarshal(t *testing.T) {
	var item DocumentItem
	raw := `{"id":1,"item_code":"BRG-001","item_name":"Besi","qty_send":"120","qty_po":120,"unit_id":1}`
	if err := json.Unmarshal([]byte(raw), &item); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if item.QtySend != "120" {
		t.Fatalf("QtySend = %q, want 120", item.QtySend)
	}
	if item.QtyPO != "120" {
		t.Fatalf("QtyPO = %q, want 120", item.QtyPO)
	}
}

func TestNumberMatches(t *testing.T) {
	d := TravelDocument{DocumentNumber: "SJ/2026/08/101"}

	if !d.NumberMatches("sj/2026/08/101") {
		t.Fatal("case-insensitive match failed")
	}
	if !d.NumberMatches("  SJ/2026/08/101  ") {
		t.Fatal("trimmed match failed")
	}
	if d.NumberMatches("SJ/2026/08/10") {
		t.Fatal("prefix must not match")
	}
}

func TestTravelDocumentWireFormat(t *testing.T) {
	raw := `{
		"id": 101,
		"no_travel_document": "SJ/2026/08/101",
		"date_no_travel_document": "2026-08-28",
		"send_to": "Gudang Cikarang",
		"project": "Proyek Tol",
		"status": "Belum terkirim",
		"items": [{"item_code":"BRG-001","item_name":"Besi","qty_send":10,"unit":{"id":1,"name":"batang"}}]
	}`

	var d TravelDocument
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if d.DocumentNumber != "SJ/2026/08/101" || d.Destination != "Gudang Cikarang" {
		t.Fatalf("decoded = %+v", d)
	}
	if d.Status != StatusNotSent {
		t.Fatalf("status = %q", d.Status)
	}
	if len(d.Items) != 1 || d.Items[0].Unit.Name != "batang" {
		t.Fatalf("items = %+v", d.Items)
	}
}
