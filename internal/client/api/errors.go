package api

import (
	"fmt"

	"github.com/zapdesk/zapdesk/internal/common"
)

// BackendError carries a message reported by the backend alongside the HTTP
// status it arrived with. For 401/403 it also matches common.ErrUnauthorized
// via errors.Is.
type BackendError struct {
	Status  int
	Message string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend error (status %d): %s", e.Status, e.Message)
}

func (e *BackendError) Unwrap() error {
	if e.Status == 401 || e.Status == 403 {
		return common.ErrUnauthorized
	}
	return nil
}
