package ldap_test

import (
	"testing"

	"github.com/ldapwire/ldapwire/ldap"
	"github.com/ldapwire/ldapwire/ldap/an"
	"github.com/ldapwire/ldapwire/ldap/controls"
	"github.com/ldapwire/ldapwire/ldap/extops"
)

type fakeCascadeFactory struct {
	controls.CascadeFactory
}

func TestRegistryReplace(t *testing.T) {
	assert, require := makeAR(t)
	r := ldap.NewRegistry()

	assert.False(r.RegisterControl(controls.CascadeFactory{}))
	assert.True(r.RegisterControl(fakeCascadeFactory{}))

	f, ok := r.Control(an.OIDCascade)
	require.True(ok)
	assert.IsType(fakeCascadeFactory{}, f)

	_, ok = r.Control(an.OIDPagedResults)
	assert.False(ok)

	assert.False(r.RegisterExtOp(extops.CertGenerationFactory{}))
	assert.True(r.RegisterExtOp(extops.CertGenerationFactory{}))
	_, ok = r.ExtOp(an.OIDCertGeneration)
	assert.True(ok)
	_, ok = r.ExtOp(an.OIDGracefulDisconnect)
	assert.False(ok)
}

func TestRegisterIdempotent(t *testing.T) {
	assert, _ := makeAR(t)
	r := ldap.NewRegistry()

	controls.Register(r)
	extops.Register(r)
	controls.Register(r)
	extops.Register(r)

	_, ok := r.Control(an.OIDCascade)
	assert.True(ok)
	_, ok = r.ExtOp(an.OIDGracefulDisconnect)
	assert.True(ok)
}
