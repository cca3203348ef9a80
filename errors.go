package f2

import (
	"errors"
	"fmt"
)

// Errors returned by the codec, the link and the client.
var (
	ErrInvalidByte   = errors.New("frame byte out of 7-bit range")
	ErrNotSendable   = errors.New("kind has no request code")
	ErrShortPayload  = errors.New("payload too short")
	ErrReadOnly      = errors.New("parameter is read-only")
	ErrValueRange    = errors.New("value out of range")
	ErrWrongType     = errors.New("parameter has a different value type")
	ErrClientClosed  = errors.New("client is closed")
	ErrWriterFull    = errors.New("writer channel full")
	ErrNotFireForget = errors.New("kind expects a response")
)

// IdentityMismatchError is returned when the device does not identify itself
// as an F2.
type IdentityMismatchError struct {
	Fingerprint []byte
}

func (e *IdentityMismatchError) Error() string {
	return fmt.Sprintf("unknown device: %v", e.Fingerprint)
}
