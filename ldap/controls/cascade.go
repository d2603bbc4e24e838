package controls

import (
	"github.com/ldapwire/ldapwire/ldap"
	"github.com/ldapwire/ldapwire/ldap/an"
)

// Cascade asks the server to cascade a delete operation. It carries no
// controlValue; its presence is the whole payload.
type Cascade struct{}

// ControlOID implements ldap.ControlValue.
func (Cascade) ControlOID() string {
	return an.OIDCascade
}

// CascadeFactory is the ldap.ControlFactory for Cascade.
type CascadeFactory struct{}

// OID implements ldap.ControlFactory.
func (CascadeFactory) OID() string {
	return an.OIDCascade
}

// NewValue implements ldap.ControlFactory.
func (CascadeFactory) NewValue(value []byte) (ldap.ControlValue, error) {
	if len(value) != 0 {
		return nil, ErrCascadeValue
	}
	return Cascade{}, nil
}

// EncodeValue implements ldap.ControlFactory.
func (CascadeFactory) EncodeValue(v ldap.ControlValue) ([]byte, error) {
	if _, ok := v.(Cascade); !ok {
		return nil, ErrValueType
	}
	return nil, nil
}
