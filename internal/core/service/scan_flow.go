package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/rekaindo/rekatrack/internal/core/domain"
	"github.com/rekaindo/rekatrack/internal/core/ports"
)

// scanPrefix is the fixed prefix a scanned code must carry. The remainder is
// the base-10 document id.
const scanPrefix = "SJNID:"

// ScanState is the explicit state of the scan-to-activate flow. Transitions
// are total functions: an operation called in the wrong state returns
// domain.ErrInvalidFlowState instead of relying on UI disabling alone.
type ScanState int

const (
	// StateScanning accepts a raw scanned payload.
	StateScanning ScanState = iota
	// StateDecoded holds a valid document id, detail not yet loaded.
	StateDecoded
	// StateDetailLoaded awaits explicit activation.
	StateDetailLoaded
	// StateActivating has an activation in flight.
	StateActivating
	// StateActivated means the document is in transit and being traced.
	StateActivated
	// StateAlreadyDelivered is the terminal display state for a document the
	// server reports as delivered; no activation is offered.
	StateAlreadyDelivered
)

func (s ScanState) String() string {
	switch s {
	case StateScanning:
		return "scanning"
	case StateDecoded:
		return "decoded"
	case StateDetailLoaded:
		return "detail_loaded"
	case StateActivating:
		return "activating"
	case StateActivated:
		return "activated"
	case StateAlreadyDelivered:
		return "already_delivered"
	default:
		return "unknown"
	}
}

// DecodeScanPayload extracts the document id from a scanned code. Anything
// that is not the fixed prefix followed by a base-10 integer is a decode
// failure; no network call is ever made for a malformed payload.
func DecodeScanPayload(payload string) (int, error) {
	if !strings.HasPrefix(payload, scanPrefix) {
		return 0, fmt.Errorf("%w: missing %q prefix", domain.ErrDecode, scanPrefix)
	}
	id, err := strconv.Atoi(payload[len(scanPrefix):])
	if err != nil {
		return 0, fmt.Errorf("%w: document id is not a number", domain.ErrDecode)
	}
	return id, nil
}

// ScanFlow drives one document from a scanned code to an active trace.
type ScanFlow struct {
	gw  ports.Gateway
	loc ports.LocationProvider
	log zerolog.Logger

	state ScanState
	docID int
	doc   domain.TravelDocument
}

func NewScanFlow(gw ports.Gateway, loc ports.LocationProvider, log zerolog.Logger) *ScanFlow {
	return &ScanFlow{gw: gw, loc: loc, log: log, state: StateScanning}
}

// State returns the flow's current state.
func (f *ScanFlow) State() ScanState { return f.state }

// DocumentID returns the decoded document id, valid from StateDecoded on.
func (f *ScanFlow) DocumentID() int { return f.docID }

// Document returns the loaded detail, valid from StateDetailLoaded on.
func (f *ScanFlow) Document() domain.TravelDocument { return f.doc }

// Decode consumes a raw scanned payload. On failure the flow stays in
// StateScanning so control returns to the scanner.
func (f *ScanFlow) Decode(payload string) error {
	if f.state != StateScanning {
		return fmt.Errorf("%w: decode in state %s", domain.ErrInvalidFlowState, f.state)
	}
	id, err := DecodeScanPayload(payload)
	if err != nil {
		return err
	}
	f.docID = id
	f.state = StateDecoded
	return nil
}

// LoadDetail fetches the document and maps its server status onto the flow:
// delivered documents land in the terminal display state, in-transit
// documents auto-advance to StateActivated without resubmitting a location
// sample (idempotent re-entry), everything else awaits activation. A fetch
// failure sends the flow back to StateScanning.
func (f *ScanFlow) LoadDetail(ctx context.Context) error {
	if f.state != StateDecoded {
		return fmt.Errorf("%w: load detail in state %s", domain.ErrInvalidFlowState, f.state)
	}

	raw, err := f.gw.Call(ctx, "GET", fmt.Sprintf(pathDocumentDetail, f.docID), nil, nil)
	if err != nil {
		f.state = StateScanning
		return err
	}

	var resp dataEnvelope[domain.TravelDocument]
	if err := json.Unmarshal(raw, &resp); err != nil {
		f.state = StateScanning
		return fmt.Errorf("scan detail: malformed response: %w", err)
	}
	f.doc = resp.Data

	switch f.doc.Status.Normalized() {
	case domain.StatusDelivered:
		f.state = StateAlreadyDelivered
	case domain.StatusInTransit:
		f.state = StateActivated
		f.log.Debug().Int("document_id", f.docID).Msg("document already in transit, tracer re-entry")
	default:
		f.state = StateDetailLoaded
	}
	return nil
}

// Activate acquires a current device fix and submits it as the document's
// first location sample. Success marks the document in transit locally and
// enters StateActivated. Location failure or submission failure leaves the
// flow in StateDetailLoaded for another attempt. A second Activate while one
// is in flight (or after success) is rejected, so a double-tap cannot submit
// twice; the server stays the idempotency authority for repeated first
// samples.
func (f *ScanFlow) Activate(ctx context.Context) error {
	if f.state != StateDetailLoaded {
		return fmt.Errorf("%w: activate in state %s", domain.ErrInvalidFlowState, f.state)
	}
	f.state = StateActivating

	coords, err := f.loc.Current(ctx)
	if err != nil {
		f.state = StateDetailLoaded
		return fmt.Errorf("activate: %w", err)
	}

	if err := sendLocation(ctx, f.gw, f.docID, coords); err != nil {
		f.state = StateDetailLoaded
		return fmt.Errorf("activate: %w", err)
	}

	f.doc.Status = domain.StatusInTransit
	f.state = StateActivated
	f.log.Info().
		Int("document_id", f.docID).
		Float64("latitude", coords.Latitude).
		Float64("longitude", coords.Longitude).
		Msg("tracer activated")
	return nil
}
