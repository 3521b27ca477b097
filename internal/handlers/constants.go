package handlers

const (
	SessionCookieName = "session_id"

	ErrInvalidJSON         = "Invalid request body"
	ErrUnauthorized        = "Unauthorized"
	ErrInternalServerError = "Internal server error"
	ErrNotFound            = "Not found"
)
