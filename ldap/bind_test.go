package ldap_test

import (
	"testing"

	"github.com/ldapwire/ldapwire/ldap"
)

func TestBindRequestEqual(t *testing.T) {
	assert, _ := makeAR(t)

	base := func() *ldap.BindRequest {
		return &ldap.BindRequest{
			Version:     3,
			Name:        "uid=hnelson,ou=users,ou=system",
			Simple:      true,
			Credentials: []byte("secret"),
		}
	}

	req := base()
	assert.True(req.Equal(req))
	assert.True(req.Equal(base()))
	assert.False(req.Equal(nil))

	other := base()
	other.Version = 2
	assert.False(req.Equal(other))

	other = base()
	other.Name = "uid=someone-else"
	assert.False(req.Equal(other))

	other = base()
	other.Credentials = []byte("Secret")
	assert.False(req.Equal(other))

	other = base()
	other.Simple = false
	other.Mechanism = "PLAIN"
	assert.False(req.Equal(other))

	sasl := &ldap.BindRequest{Version: 3, Mechanism: "EXTERNAL"}
	assert.True(sasl.Equal(&ldap.BindRequest{Version: 3, Mechanism: "EXTERNAL"}))
	assert.False(sasl.Equal(&ldap.BindRequest{Version: 3, Mechanism: "GSSAPI"}))

	// nil and empty credentials compare equal
	assert.True((&ldap.BindRequest{Simple: true}).Equal(
		&ldap.BindRequest{Simple: true, Credentials: []byte{}}))
}
