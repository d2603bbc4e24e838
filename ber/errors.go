package ber

import (
	"errors"
	"fmt"
)

// Error conditions.
var (
	ErrIncomplete   = errors.New("incomplete input")
	ErrTail         = errors.New("junk after end of element")
	ErrTagOctets    = errors.New("tag encoding too long")
	ErrIndefinite   = errors.New("indefinite length not permitted")
	ErrLengthOctets = errors.New("length encoding too long")
	ErrLengthForm   = errors.New("non-minimal length encoding")
	ErrElementSize  = errors.New("element exceeds size limit")
	ErrNesting      = errors.New("constructed elements nested too deeply")
	ErrBudget       = errors.New("length exceeds enclosing element")
	ErrPrimitive    = errors.New("primitive element expected")
	ErrInteger      = errors.New("INTEGER length out of range")
	ErrBoolean      = errors.New("BOOLEAN must be one octet")
	ErrOID          = errors.New("invalid OBJECT IDENTIFIER")
)

// DecodeError reports a malformed input, along with the stream offset at
// which it was detected.
type DecodeError struct {
	Offset int
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode error at octet %d: %v", e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
