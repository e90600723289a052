package shared

import "errors"

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrNotOwner indicates an attempt to access another user's data.
	ErrNotOwner = errors.New("not owner")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthenticated indicates a request without a valid session.
	ErrUnauthenticated = errors.New("unauthenticated")
)

// UserSafeMessage returns a message suitable for showing to end users. Known
// domain errors pass through; anything else collapses to a generic notice so
// internal details never leak into responses.
func UserSafeMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return "The requested record was not found"
	case errors.Is(err, ErrNotOwner):
		return "You do not have access to this record"
	case errors.Is(err, ErrInvalidCredentials):
		return "Invalid email or password"
	case errors.Is(err, ErrUnauthenticated):
		return "Please sign in to continue"
	default:
		return "Something went wrong, please try again"
	}
}
