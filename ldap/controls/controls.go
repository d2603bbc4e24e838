// Package controls implements the concrete LDAP controls shipped with this
// module. Register attaches their factories to a Registry.
package controls

import (
	"errors"

	"github.com/ldapwire/ldapwire/ldap"
)

// Error conditions.
var (
	ErrValueType     = errors.New("unexpected controlValue type")
	ErrCascadeValue  = errors.New("cascade control takes no controlValue")
	ErrPagedFormat   = errors.New("malformed paged results controlValue")
	ErrDirSyncFormat = errors.New("malformed DirSync controlValue")
)

// Register adds every factory of this package to the registry.
func Register(r *ldap.Registry) {
	r.RegisterControl(CascadeFactory{})
	r.RegisterControl(PagedResultsFactory{})
	r.RegisterControl(DirSyncFactory{})
}
