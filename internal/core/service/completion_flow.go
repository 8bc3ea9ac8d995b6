package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/rekaindo/rekatrack/internal/core/domain"
	"github.com/rekaindo/rekatrack/internal/core/ports"
	"github.com/rekaindo/rekatrack/internal/metrics"
)

// CompletionState is the explicit state of the completion flow.
type CompletionState int

const (
	// StateFormEditing collects receiver name, timestamp and note.
	StateFormEditing CompletionState = iota
	// StatePhotoSelected has a proof photo attached; submission is allowed.
	StatePhotoSelected
	// StateSubmitting has a submission in flight or failed; retry is allowed
	// and the uploaded photo path is reused.
	StateSubmitting
	// StateCompleted means the document is delivered.
	StateCompleted
)

func (s CompletionState) String() string {
	switch s {
	case StateFormEditing:
		return "form_editing"
	case StatePhotoSelected:
		return "photo_selected"
	case StateSubmitting:
		return "submitting"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// CompletionForm is the user-entered part of the confirmation. ReceivedAt
// defaults to submission time when left zero.
type CompletionForm struct {
	ReceiverName string `validate:"required"`
	ReceivedAt   time.Time
	Note         string
}

// CompletionFlow collects the confirmation form and executes the three-step
// submission sequence: current location, photo upload, completion record.
// Each step's success gates the next; a step-3 failure keeps the flow in
// StateSubmitting with the already-uploaded photo path cached so a retry
// does not re-upload.
type CompletionFlow struct {
	gw       ports.Gateway
	loc      ports.LocationProvider
	validate *validator.Validate
	log      zerolog.Logger

	state     CompletionState
	docID     int
	photo     ports.Photo
	photoPath string // server-assigned, cached across retries
}

func NewCompletionFlow(documentID int, gw ports.Gateway, loc ports.LocationProvider, log zerolog.Logger) *CompletionFlow {
	return &CompletionFlow{
		gw:       gw,
		loc:      loc,
		validate: validator.New(),
		log:      log,
		state:    StateFormEditing,
		docID:    documentID,
	}
}

// State returns the flow's current state.
func (f *CompletionFlow) State() CompletionState { return f.state }

// AttachPhoto records the selected proof photo. Re-selection before
// submission replaces the previous choice; once a submission is in flight or
// done the photo is fixed.
func (f *CompletionFlow) AttachPhoto(p ports.Photo) error {
	if f.state != StateFormEditing && f.state != StatePhotoSelected {
		return fmt.Errorf("%w: attach photo in state %s", domain.ErrInvalidFlowState, f.state)
	}
	if p.Open == nil {
		return fmt.Errorf("%w: photo has no content", domain.ErrValidation)
	}
	f.photo = p
	f.state = StatePhotoSelected
	return nil
}

type uploadResponse struct {
	PhotoPath string `json:"photo_path"`
}

// Submit validates the form and runs the submission sequence. Validation
// failures are detected entirely client-side: no network call is attempted
// and the error names the unmet requirement.
func (f *CompletionFlow) Submit(ctx context.Context, form CompletionForm) error {
	switch f.state {
	case StatePhotoSelected, StateSubmitting:
		// allowed: first attempt or retry
	case StateFormEditing:
		return fmt.Errorf("%w: proof photo is required", domain.ErrValidation)
	default:
		return fmt.Errorf("%w: submit in state %s", domain.ErrInvalidFlowState, f.state)
	}

	if err := f.validate.Struct(form); err != nil {
		return fmt.Errorf("%w: receiver name is required", domain.ErrValidation)
	}

	f.state = StateSubmitting

	// Step 1: current device location — hard dependency, no partial completion.
	coords, err := f.loc.Current(ctx)
	if err != nil {
		metrics.CompletionsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("complete: %w", err)
	}

	// Step 2: photo upload, skipped on retry when the path is already known.
	if f.photoPath == "" {
		body, err := f.photo.Open()
		if err != nil {
			metrics.CompletionsTotal.WithLabelValues("error").Inc()
			return fmt.Errorf("complete: open photo: %w", err)
		}
		raw, uploadErr := f.gw.Upload(ctx, pathUploadPhoto, "photo", f.photo.Name, body)
		_ = body.Close()
		if uploadErr != nil {
			metrics.CompletionsTotal.WithLabelValues("error").Inc()
			return fmt.Errorf("complete: upload photo: %w", uploadErr)
		}

		var resp uploadResponse
		if err := json.Unmarshal(raw, &resp); err != nil || resp.PhotoPath == "" {
			metrics.CompletionsTotal.WithLabelValues("error").Inc()
			return fmt.Errorf("complete: upload response missing photo_path")
		}
		f.photoPath = resp.PhotoPath
	}

	// Step 3: atomic completion record.
	receivedAt := form.ReceivedAt
	if receivedAt.IsZero() {
		receivedAt = time.Now().UTC()
	}
	req := domain.CompletionRequest{
		DocumentIDs:  []int{f.docID},
		Latitude:     coords.Latitude,
		Longitude:    coords.Longitude,
		ReceiverName: form.ReceiverName,
		ReceivedAt:   receivedAt,
		Note:         form.Note,
		PhotoPath:    f.photoPath,
	}
	if _, err := f.gw.Call(ctx, "POST", pathCompleteTracking, req, nil); err != nil {
		metrics.CompletionsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("complete: %w", err)
	}

	f.state = StateCompleted
	metrics.CompletionsTotal.WithLabelValues("ok").Inc()
	f.log.Info().
		Int("document_id", f.docID).
		Str("receiver", form.ReceiverName).
		Msg("delivery completed")
	return nil
}
