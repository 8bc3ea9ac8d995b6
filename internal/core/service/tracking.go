package service

import (
	"context"

	"github.com/rekaindo/rekatrack/internal/core/domain"
	"github.com/rekaindo/rekatrack/internal/core/ports"
)

const (
	pathLogin            = "/login"
	pathUser             = "/user"
	pathUserUpdate       = "/user/update"
	pathDocuments        = "/travel-documents"
	pathDocumentDetail   = "/travel-document/%d"
	pathSendLocation     = "/send-location"
	pathCompleteTracking = "/complete-tracking"
	pathUploadPhoto      = "/upload-delivery-photo"
	pathConfirmation     = "/delivery-confirmation/%d"
)

// sendLocation posts one sample tagged with the document id. Shared by the
// scan flow's activation and the live reporter.
func sendLocation(ctx context.Context, gw ports.Gateway, documentID int, c domain.Coordinates) error {
	_, err := gw.Call(ctx, "POST", pathSendLocation, domain.NewLocationSample(documentID, c), nil)
	return err
}
