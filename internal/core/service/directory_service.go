package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/rekaindo/rekatrack/internal/core/domain"
	"github.com/rekaindo/rekatrack/internal/core/ports"
)

// DirectoryService fetches and derives views over the list of travel
// documents. All derivations are pure; nothing is cached between calls so
// stats can never go stale relative to the list they were computed from.
type DirectoryService struct {
	gw  ports.Gateway
	log zerolog.Logger
}

func NewDirectoryService(gw ports.Gateway, log zerolog.Logger) *DirectoryService {
	return &DirectoryService{gw: gw, log: log}
}

// ListAll fetches every travel document, sorted descending by issue date.
// Ties keep the server's order (stable sort).
func (s *DirectoryService) ListAll(ctx context.Context) ([]domain.TravelDocument, error) {
	raw, err := s.gw.Call(ctx, "GET", pathDocuments, nil, nil)
	if err != nil {
		return nil, err
	}

	var resp dataEnvelope[[]domain.TravelDocument]
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("list documents: malformed response: %w", err)
	}

	docs := resp.Data
	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].IssueDate.After(docs[j].IssueDate.Time)
	})

	s.log.Debug().Int("count", len(docs)).Msg("travel documents loaded")
	return docs, nil
}

// Detail fetches a single travel document by id.
func (s *DirectoryService) Detail(ctx context.Context, id int) (domain.TravelDocument, error) {
	raw, err := s.gw.Call(ctx, "GET", fmt.Sprintf(pathDocumentDetail, id), nil, nil)
	if err != nil {
		return domain.TravelDocument{}, err
	}

	var resp dataEnvelope[domain.TravelDocument]
	if err := json.Unmarshal(raw, &resp); err != nil {
		return domain.TravelDocument{}, fmt.Errorf("document detail: malformed response: %w", err)
	}
	return resp.Data, nil
}

// Confirmation fetches the proof-of-delivery record for a document.
func (s *DirectoryService) Confirmation(ctx context.Context, id int) (domain.DeliveryConfirmation, error) {
	raw, err := s.gw.Call(ctx, "GET", fmt.Sprintf(pathConfirmation, id), nil, nil)
	if err != nil {
		return domain.DeliveryConfirmation{}, err
	}

	var resp dataEnvelope[domain.DeliveryConfirmation]
	if err := json.Unmarshal(raw, &resp); err != nil {
		return domain.DeliveryConfirmation{}, fmt.Errorf("delivery confirmation: malformed response: %w", err)
	}
	return resp.Data, nil
}

// Search filters case-insensitively on project and document number
// (substring match). An empty query returns the list unchanged.
func Search(query string, list []domain.TravelDocument) []domain.TravelDocument {
	keyword := strings.ToLower(strings.TrimSpace(query))
	if keyword == "" {
		return list
	}

	var out []domain.TravelDocument
	for _, d := range list {
		if strings.Contains(strings.ToLower(d.Project), keyword) ||
			strings.Contains(strings.ToLower(d.DocumentNumber), keyword) {
			out = append(out, d)
		}
	}
	return out
}

// FilterByStatus is a pure predicate filter over the normalised status.
func FilterByStatus(status domain.DocumentStatus, list []domain.TravelDocument) []domain.TravelDocument {
	var out []domain.TravelDocument
	for _, d := range list {
		if d.Status.Normalized() == status.Normalized() {
			out = append(out, d)
		}
	}
	return out
}

// Stats is the aggregate count per status plus the total.
type Stats struct {
	NotSent   int
	InTransit int
	Delivered int
	Total     int
}

// ComputeStats is a pure reduction over the backing list. Recompute it
// whenever the list changes; never hold a cached copy.
func ComputeStats(list []domain.TravelDocument) Stats {
	stats := Stats{Total: len(list)}
	for _, d := range list {
		switch d.Status.Normalized() {
		case domain.StatusNotSent:
			stats.NotSent++
		case domain.StatusInTransit:
			stats.InTransit++
		case domain.StatusDelivered:
			stats.Delivered++
		}
	}
	return stats
}

// FindByNumber performs the manual tracking lookup: case-insensitive exact
// match on the document number. A miss is a distinct not-found outcome, not
// an empty result.
func FindByNumber(number string, list []domain.TravelDocument) (domain.TravelDocument, error) {
	if strings.TrimSpace(number) == "" {
		return domain.TravelDocument{}, fmt.Errorf("%w: document number is required", domain.ErrValidation)
	}
	for _, d := range list {
		if d.NumberMatches(number) {
			return d, nil
		}
	}
	return domain.TravelDocument{}, domain.ErrDocumentNotFound
}

// Recent returns the first n documents of an already-sorted list.
func Recent(list []domain.TravelDocument, n int) []domain.TravelDocument {
	if n < 0 {
		n = 0
	}
	if n > len(list) {
		n = len(list)
	}
	return list[:n]
}
