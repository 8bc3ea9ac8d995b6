// Command rekatrack is the delivery tracking client for RekaTrack travel
// documents: login, document directory, scan-to-activate, live location
// reporting and delivery completion from the terminal.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/rekaindo/rekatrack/internal/core/domain"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		exitCode := 1
		switch {
		case errors.Is(err, domain.ErrSessionExpired):
			fmt.Fprintln(os.Stderr, "session expired, please login again")
		case errors.Is(err, domain.ErrInvalidCredentials):
			fmt.Fprintln(os.Stderr, "invalid email or password")
		case errors.Is(err, domain.ErrDocumentNotFound):
			fmt.Fprintln(os.Stderr, "travel document not found")
		default:
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(exitCode)
	}
}
