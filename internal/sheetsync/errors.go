package sheetsync

import (
	"errors"

	"google.golang.org/api/googleapi"
)

// Sentinel errors returned by the synchronizer. ErrNotSignedIn and
// ErrNoSpreadsheet are precondition failures: callers that want the original
// silent-no-op behavior check for them with errors.Is and move on.
var (
	ErrNotSignedIn   = errors.New("not signed in")
	ErrNoSpreadsheet = errors.New("no spreadsheet configured")
	ErrNoSheets      = errors.New("spreadsheet has no sheets")
	ErrNotFound      = errors.New("record not found")
	ErrSheetNotFound = errors.New("sheet not found")
	ErrRowMoved      = errors.New("row moved since it was located")
	ErrAddFailed     = errors.New("append failed")
	ErrCreateFailed  = errors.New("spreadsheet creation failed")
	ErrAuthExpired   = errors.New("authorization expired")
)

// IsSkipped reports whether err is one of the precondition sentinels, i.e.
// nothing happened because the session or configuration was missing.
func IsSkipped(err error) bool {
	return errors.Is(err, ErrNotSignedIn) || errors.Is(err, ErrNoSpreadsheet)
}

// isAuthError reports whether err is an HTTP 401/403 from the remote service.
func isAuthError(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == 401 || apiErr.Code == 403
	}
	return false
}
