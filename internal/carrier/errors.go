package carrier

import (
	"errors"
	"fmt"
)

// ErrCircuitOpen is returned without contacting the carrier while the breaker is open.
var ErrCircuitOpen = errors.New("carrier unavailable: circuit breaker is open")

// Error is a rejection reported by the carrier API.
type Error struct {
	Code       int
	Message    string
	HTTPStatus int
}

func (e *Error) Error() string {
	return fmt.Sprintf("carrier error %d (http %d): %s", e.Code, e.HTTPStatus, e.Message)
}

// CodeString returns the carrier error code as stored on audit rows.
func (e *Error) CodeString() string {
	if e.Code == 0 {
		return ""
	}
	return fmt.Sprintf("%d", e.Code)
}

// Describe splits any send error into the error code and message recorded
// on failed rows.
func Describe(err error) (code, message string) {
	var carrierErr *Error
	if errors.As(err, &carrierErr) {
		return carrierErr.CodeString(), carrierErr.Message
	}
	return "", err.Error()
}
