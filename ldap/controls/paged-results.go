package controls

import (
	"github.com/ldapwire/ldapwire/ber"
	"github.com/ldapwire/ldapwire/ldap"
	"github.com/ldapwire/ldapwire/ldap/an"
)

// PagedResults is the simple paged results control of RFC 2696: a page size
// and the server-issued paging cookie.
type PagedResults struct {
	Size   int32
	Cookie []byte
}

// ControlOID implements ldap.ControlValue.
func (PagedResults) ControlOID() string {
	return an.OIDPagedResults
}

// PagedResultsFactory is the ldap.ControlFactory for PagedResults.
type PagedResultsFactory struct{}

// OID implements ldap.ControlFactory.
func (PagedResultsFactory) OID() string {
	return an.OIDPagedResults
}

// NewValue implements ldap.ControlFactory.
func (PagedResultsFactory) NewValue(value []byte) (ldap.ControlValue, error) {
	el, rest, e := ber.Parse(value)
	if e != nil {
		return nil, e
	}
	if len(rest) != 0 {
		return nil, ber.ErrTail
	}
	if el.Tag != ber.Sequence || len(el.Children) != 2 ||
		el.Children[0].Tag != ber.Integer || el.Children[1].Tag != ber.OctetString {
		return nil, ErrPagedFormat
	}
	size, e := ber.ParseInt32(el.Children[0].Value)
	if e != nil {
		return nil, e
	}
	return PagedResults{Size: size, Cookie: el.Children[1].Value}, nil
}

// EncodeValue implements ldap.ControlFactory.
func (PagedResultsFactory) EncodeValue(v ldap.ControlValue) ([]byte, error) {
	paged, ok := v.(PagedResults)
	if !ok {
		return nil, ErrValueType
	}
	el := ber.NewConstructed(ber.Sequence,
		ber.NewPrimitive(ber.Integer, ber.AppendInt(nil, int64(paged.Size))),
		ber.NewPrimitive(ber.OctetString, paged.Cookie),
	)
	return el.Bytes(), nil
}
