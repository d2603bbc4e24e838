package ldap

// ExtendedValue is a typed extended operation payload produced by an
// ExtOpFactory.
type ExtendedValue interface {
	// ExtensionOID returns the OID of the extended operation this payload
	// belongs to.
	ExtensionOID() string
}

// OpaqueExtendedValue preserves the payload of an extended operation whose
// OID has no registered factory, or whose factory rejected the payload.
type OpaqueExtendedValue struct {
	OID   string
	Bytes []byte
}

// ExtensionOID implements ExtendedValue.
func (v OpaqueExtendedValue) ExtensionOID() string {
	return v.OID
}

// ExtendedRequest is the client side of an extended operation. Value is nil
// for operations without a request payload.
type ExtendedRequest struct {
	Name  string
	Value ExtendedValue
}

func (*ExtendedRequest) isOperation() {}

// ExtendedResponse is the server side of an extended operation, solicited
// or not (e.g. a disconnect notice).
type ExtendedResponse struct {
	Result
	Name  string
	Value ExtendedValue
}

func (*ExtendedResponse) isOperation() {}
