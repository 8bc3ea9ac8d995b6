package ports

import (
	"context"
	"io"
)

// Photo is a local image reference produced by a capability source. Open is
// lazy so the flow only touches the file when it is actually uploaded.
type Photo struct {
	Name string
	Open func() (io.ReadCloser, error)
}

// PhotoSource yields a proof photo from either capability source (camera
// capture or gallery selection). A refused capability surfaces as
// domain.ErrPermissionDenied.
type PhotoSource interface {
	Pick(ctx context.Context) (Photo, error)
}
