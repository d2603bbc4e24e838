// Package ldap implements the LDAP message grammar on top of the ber codec:
// protocol operations, controls, extended operations, and the OID-keyed
// registry that dispatches extension payloads to typed values.
package ldap

import "github.com/ldapwire/ldapwire/core/logging"

var logger = logging.New("ldap")
