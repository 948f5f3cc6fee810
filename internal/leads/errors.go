package leads

import "errors"

var (
	ErrInvalidCSV        = errors.New("invalid csv")
	ErrMissingColumn     = errors.New("missing required column")
	ErrSessionRequired   = errors.New("session id required")
	ErrNoLeads           = errors.New("no leads loaded")
	ErrSyncFailed        = errors.New("crm sync failed")
	ErrSyncNotConfigured = errors.New("crm sync not configured")
)
