// Package extops implements the concrete LDAP extended operations shipped
// with this module. Register attaches their factories to a Registry.
package extops

import (
	"errors"

	"github.com/ldapwire/ldapwire/ldap"
)

// Error conditions.
var (
	ErrValueType      = errors.New("unexpected extended operation value type")
	ErrCertGenFormat  = errors.New("malformed certificate generation request")
	ErrGracefulFormat = errors.New("malformed graceful disconnect value")
	ErrNoRequestSide  = errors.New("extended operation has no request payload")
)

// Register adds every factory of this package to the registry.
func Register(r *ldap.Registry) {
	r.RegisterExtOp(CertGenerationFactory{})
	r.RegisterExtOp(GracefulDisconnectFactory{})
}
