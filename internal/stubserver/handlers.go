package stubserver

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/rekaindo/rekatrack/internal/core/domain"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	AccessToken string      `json:"access_token"`
	Message     string      `json:"message"`
	Data        domain.User `json:"data"`
}

func (s *Server) handleLogin(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	acc, ok := s.store.authenticate(req.Email, req.Password)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	token, err := issueToken(s.cfg.JWTSecret, acc.User.Email, s.cfg.TokenTTL)
	if err != nil {
		return fmt.Errorf("sign token: %w", err)
	}

	s.log.Info().Str("email", acc.User.Email).Msg("login")
	return c.JSON(http.StatusOK, loginResponse{
		AccessToken: token,
		Message:     "login successful",
		Data:        acc.User,
	})
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

type dataResponse struct {
	Data any `json:"data"`
}

func (s *Server) handleProfile(c echo.Context) error {
	claims, ok := claimsFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthenticated")
	}

	s.store.mu.Lock()
	acc, found := s.store.accounts[claims.Email]
	s.store.mu.Unlock()
	if !found {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthenticated")
	}
	return c.JSON(http.StatusOK, dataResponse{Data: acc.User})
}

type profileUpdateRequest struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phone_number"`
}

func (s *Server) handleProfileUpdate(c echo.Context) error {
	claims, ok := claimsFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthenticated")
	}

	var req profileUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	acc, found := s.store.accounts[claims.Email]
	if !found {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthenticated")
	}
	acc.User.Name = req.Name
	acc.User.PhoneNumber = req.PhoneNumber
	if req.Email != claims.Email {
		acc.User.Email = req.Email
		s.store.accounts[req.Email] = acc
		delete(s.store.accounts, claims.Email)
	}
	return c.JSON(http.StatusOK, dataResponse{Data: acc.User})
}

func (s *Server) handleListDocuments(c echo.Context) error {
	s.store.mu.Lock()
	docs := make([]domain.TravelDocument, 0, len(s.store.docs))
	for _, d := range s.store.docs {
		docs = append(docs, *d)
	}
	s.store.mu.Unlock()

	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	return c.JSON(http.StatusOK, dataResponse{Data: docs})
}

func (s *Server) handleDocumentDetail(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid document id")
	}

	doc, ok := s.store.Document(id)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "travel document not found")
	}
	return c.JSON(http.StatusOK, dataResponse{Data: doc})
}

// handleSendLocation records a live sample. A document still in the initial
// status is moved to in transit, which is how tracer activation happens on
// the wire: the first sample is the activation.
func (s *Server) handleSendLocation(c echo.Context) error {
	var sample domain.LocationSample
	if err := c.Bind(&sample); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	if len(sample.DocumentIDs) == 0 {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "travel_document_id is required")
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	for _, id := range sample.DocumentIDs {
		doc, ok := s.store.docs[id]
		if !ok {
			return echo.NewHTTPError(http.StatusNotFound, "travel document not found")
		}
		if doc.Status.Normalized() == domain.StatusDelivered {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "travel document already delivered")
		}
		if doc.Status.CanTransitionTo(domain.StatusInTransit) {
			doc.Status = domain.StatusInTransit
		}
		s.store.samples[id] = append(s.store.samples[id], sample)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "location recorded"})
}

type completeTrackingRequest struct {
	DocumentIDs  []int   `json:"travel_document_id" validate:"required,min=1"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	ReceiverName string  `json:"receiver_name" validate:"required"`
	ReceivedAt   string  `json:"received_at" validate:"required"`
	Note         string  `json:"note"`
	PhotoPath    string  `json:"photo_path" validate:"required"`
}

// handleCompleteTracking finalises a delivery. The whole batch is checked
// before any document is mutated so a rejected id leaves nothing half done.
func (s *Server) handleCompleteTracking(c echo.Context) error {
	var req completeTrackingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	for _, id := range req.DocumentIDs {
		doc, ok := s.store.docs[id]
		if !ok {
			return echo.NewHTTPError(http.StatusNotFound, "travel document not found")
		}
		if !doc.Status.CanTransitionTo(domain.StatusDelivered) {
			return echo.NewHTTPError(http.StatusUnprocessableEntity,
				fmt.Sprintf("travel document %s cannot be completed from status %s", doc.DocumentNumber, doc.Status))
		}
		if _, exists := s.store.confirmations[id]; exists {
			return echo.NewHTTPError(http.StatusConflict, "delivery already confirmed")
		}
	}

	receivedAt, err := parseReceivedAt(req.ReceivedAt)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "received_at is not a valid timestamp")
	}

	for _, id := range req.DocumentIDs {
		doc := s.store.docs[id]
		doc.Status = domain.StatusDelivered
		s.store.confirmations[id] = &domain.DeliveryConfirmation{
			DocumentID:   id,
			ReceiverName: req.ReceiverName,
			ReceivedAt:   receivedAt,
			Note:         req.Note,
			PhotoPath:    req.PhotoPath,
		}
		s.store.samples[id] = append(s.store.samples[id], domain.LocationSample{
			DocumentIDs: []int{id},
			Latitude:    req.Latitude,
			Longitude:   req.Longitude,
		})
	}

	s.log.Info().Ints("ids", req.DocumentIDs).Msg("tracking completed")
	return c.JSON(http.StatusOK, map[string]string{"message": "tracking completed"})
}

var receivedAtLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
}

func parseReceivedAt(raw string) (time.Time, error) {
	for _, layout := range receivedAtLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported timestamp %q", raw)
}

type uploadResponse struct {
	PhotoPath string `json:"photo_path"`
}

func (s *Server) handleUploadPhoto(c echo.Context) error {
	fh, err := c.FormFile("photo")
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "photo is required")
	}

	serverPath := "/storage/delivery-photos/" + uuid.NewString() + filepath.Ext(fh.Filename)

	src, err := fh.Open()
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	if s.cfg.PhotoDir != "" {
		dst, err := os.Create(filepath.Join(s.cfg.PhotoDir, filepath.Base(serverPath)))
		if err != nil {
			return fmt.Errorf("store upload: %w", err)
		}
		defer dst.Close()
		if _, err := io.Copy(dst, src); err != nil {
			return fmt.Errorf("store upload: %w", err)
		}
	} else if _, err := io.Copy(io.Discard, src); err != nil {
		return fmt.Errorf("read upload: %w", err)
	}

	return c.JSON(http.StatusOK, uploadResponse{PhotoPath: serverPath})
}

func (s *Server) handleConfirmation(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid document id")
	}

	s.store.mu.Lock()
	conf, ok := s.store.confirmations[id]
	s.store.mu.Unlock()
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "delivery confirmation not found")
	}
	return c.JSON(http.StatusOK, dataResponse{Data: conf})
}
