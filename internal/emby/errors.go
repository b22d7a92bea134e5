// internal/emby/errors.go
package emby

import "fmt"

// ConnectionError wraps transport failures reaching the Emby server.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("emby connection failed: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// TimeoutError indicates the request exceeded the configured timeout.
type TimeoutError struct {
	Err error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("emby request timed out: %v", e.Err)
}

func (e *TimeoutError) Unwrap() error { return e.Err }

// AuthError indicates the server rejected the API key.
type AuthError struct {
	Status int
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("emby rejected credentials (status %d)", e.Status)
}

// ServerError carries a non-2xx response that is not an auth failure.
type ServerError struct {
	Status int
	Body   string
}

func (e *ServerError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("emby server error %d", e.Status)
	}
	return fmt.Sprintf("emby server error %d: %s", e.Status, e.Body)
}
