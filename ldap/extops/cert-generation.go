package extops

import (
	"github.com/ldapwire/ldapwire/ber"
	"github.com/ldapwire/ldapwire/ldap"
	"github.com/ldapwire/ldapwire/ldap/an"
)

// CertGenerationRequest asks the server to generate a key pair and
// certificate for the target entry.
type CertGenerationRequest struct {
	TargetDN     string
	IssuerDN     string
	SubjectDN    string
	KeyAlgorithm string
}

// ExtensionOID implements ldap.ExtendedValue.
func (CertGenerationRequest) ExtensionOID() string {
	return an.OIDCertGeneration
}

// CertGenerationFactory is the ldap.ExtOpFactory for certificate
// generation. The response carries no payload.
type CertGenerationFactory struct{}

// OID implements ldap.ExtOpFactory.
func (CertGenerationFactory) OID() string {
	return an.OIDCertGeneration
}

// NewRequest implements ldap.ExtOpFactory.
func (CertGenerationFactory) NewRequest(value []byte) (ldap.ExtendedValue, error) {
	el, rest, e := ber.Parse(value)
	if e != nil {
		return nil, e
	}
	if len(rest) != 0 {
		return nil, ber.ErrTail
	}
	if el.Tag != ber.Sequence || len(el.Children) != 4 {
		return nil, ErrCertGenFormat
	}
	for _, child := range el.Children {
		if child.Tag != ber.OctetString {
			return nil, ErrCertGenFormat
		}
	}
	return CertGenerationRequest{
		TargetDN:     el.Children[0].String(),
		IssuerDN:     el.Children[1].String(),
		SubjectDN:    el.Children[2].String(),
		KeyAlgorithm: el.Children[3].String(),
	}, nil
}

// NewResponse implements ldap.ExtOpFactory.
func (CertGenerationFactory) NewResponse(value []byte) (ldap.ExtendedValue, error) {
	if len(value) != 0 {
		return nil, ErrCertGenFormat
	}
	return nil, nil
}

// EncodeValue implements ldap.ExtOpFactory.
func (CertGenerationFactory) EncodeValue(v ldap.ExtendedValue) ([]byte, error) {
	req, ok := v.(CertGenerationRequest)
	if !ok {
		return nil, ErrValueType
	}
	el := ber.NewConstructed(ber.Sequence,
		ber.NewPrimitive(ber.OctetString, []byte(req.TargetDN)),
		ber.NewPrimitive(ber.OctetString, []byte(req.IssuerDN)),
		ber.NewPrimitive(ber.OctetString, []byte(req.SubjectDN)),
		ber.NewPrimitive(ber.OctetString, []byte(req.KeyAlgorithm)),
	)
	return el.Bytes(), nil
}
