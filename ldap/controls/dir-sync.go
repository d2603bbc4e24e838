package controls

import (
	"github.com/ldapwire/ldapwire/ber"
	"github.com/ldapwire/ldapwire/ldap"
	"github.com/ldapwire/ldapwire/ldap/an"
)

// DirSync flags returned by the server.
const (
	DirSyncObjectSecurity      = 0x0001
	DirSyncAncestorsFirstOrder = 0x0800
	DirSyncPublicDataOnly      = 0x2000
	DirSyncIncrementalValues   = 0x7FFFFFFF
)

// DirSync is the Active Directory DirSync replication control
// (draft-armijo-ldap-dirsync-00). The same value shape rides the search
// request and the search result: Flags carries parentsFirst on the request
// and the DirSync* flags on the response.
type DirSync struct {
	Flags           int32
	MaxReturnLength int32
	Cookie          []byte
}

// ControlOID implements ldap.ControlValue.
func (DirSync) ControlOID() string {
	return an.OIDDirSync
}

// DirSyncFactory is the ldap.ControlFactory for DirSync.
type DirSyncFactory struct{}

// OID implements ldap.ControlFactory.
func (DirSyncFactory) OID() string {
	return an.OIDDirSync
}

// NewValue implements ldap.ControlFactory.
func (DirSyncFactory) NewValue(value []byte) (ldap.ControlValue, error) {
	el, rest, e := ber.Parse(value)
	if e != nil {
		return nil, e
	}
	if len(rest) != 0 {
		return nil, ber.ErrTail
	}
	if el.Tag != ber.Sequence || len(el.Children) != 3 ||
		el.Children[0].Tag != ber.Integer || el.Children[1].Tag != ber.Integer ||
		el.Children[2].Tag != ber.OctetString {
		return nil, ErrDirSyncFormat
	}
	ds := DirSync{Cookie: el.Children[2].Value}
	if ds.Flags, e = ber.ParseInt32(el.Children[0].Value); e != nil {
		return nil, e
	}
	if ds.MaxReturnLength, e = ber.ParseInt32(el.Children[1].Value); e != nil {
		return nil, e
	}
	return ds, nil
}

// EncodeValue implements ldap.ControlFactory.
func (DirSyncFactory) EncodeValue(v ldap.ControlValue) ([]byte, error) {
	ds, ok := v.(DirSync)
	if !ok {
		return nil, ErrValueType
	}
	el := ber.NewConstructed(ber.Sequence,
		ber.NewPrimitive(ber.Integer, ber.AppendInt(nil, int64(ds.Flags))),
		ber.NewPrimitive(ber.Integer, ber.AppendInt(nil, int64(ds.MaxReturnLength))),
		ber.NewPrimitive(ber.OctetString, ds.Cookie),
	)
	return el.Bytes(), nil
}
