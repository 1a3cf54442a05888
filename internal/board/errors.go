package board

import "errors"

// Error taxonomy shared by the board components.
// Handlers translate these to HTTP statuses: 400, 401, 403, 404.
var (
	ErrValidation   = errors.New("invalid input")       // Missing or malformed input
	ErrUnauthorized = errors.New("invalid credentials") // Unknown user or wrong password
	ErrForbidden    = errors.New("not the author")      // Requester does not own the entity
	ErrNotFound     = errors.New("not found")           // Id does not resolve to an entity
)
