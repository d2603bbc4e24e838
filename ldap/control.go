package ldap

// Control is one control attached to a Message: the controlType OID, the
// criticality flag, and the typed payload. Value is nil when the control
// carries no controlValue.
type Control struct {
	OID      string
	Critical bool
	Value    ControlValue
}

// ControlValue is a typed control payload produced by a ControlFactory.
type ControlValue interface {
	// ControlOID returns the controlType this payload belongs to.
	ControlOID() string
}

// OpaqueControlValue preserves the controlValue of a control whose OID has
// no registered factory, or whose factory rejected the payload. The bytes
// pass through encoding verbatim.
type OpaqueControlValue struct {
	OID   string
	Bytes []byte
}

// ControlOID implements ControlValue.
func (v OpaqueControlValue) ControlOID() string {
	return v.OID
}
