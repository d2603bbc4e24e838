package ldap

import "errors"

// Decode error conditions, attributable to untrusted input. They abort only
// the message being decoded.
var (
	ErrMessageFormat = errors.New("malformed LDAPMessage")
	ErrOpTag         = errors.New("unknown protocol operation tag")
	ErrControlFormat = errors.New("malformed control")
)

// Encode error conditions, indicating a defect in the caller or the codec
// itself. An encode that fails this way must not be retried.
var (
	ErrMissingOp      = errors.New("message has no operation")
	ErrMissingOID     = errors.New("extended operation has no OID")
	ErrNoFactory      = errors.New("no factory registered for OID")
	ErrEncodeMismatch = errors.New("encoded length differs from computed length")
)
