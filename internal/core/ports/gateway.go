package ports

import (
	"context"
	"encoding/json"
	"io"
)

// Gateway is the single chokepoint for all network calls. It attaches the
// bearer credential, enforces the request timeout, normalises the
// success/error shape and reacts to authentication expiry. No component
// performs raw network I/O itself; photo transport passes through Upload.
type Gateway interface {
	// Call performs a JSON request. A nil body sends no payload. The returned
	// bytes are the parsed response body; when the server answered with
	// something that is not JSON the raw text is returned as-is and callers
	// must treat it as a data-shape error in their own validation.
	Call(ctx context.Context, method, path string, body any, headers map[string]string) (json.RawMessage, error)

	// Upload performs a multipart file upload with the given form field name,
	// leaving the content type (and boundary) to the transport.
	Upload(ctx context.Context, path, field, filename string, r io.Reader) (json.RawMessage, error)
}
