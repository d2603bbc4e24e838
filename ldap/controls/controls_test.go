package controls_test

import (
	"testing"

	"github.com/ldapwire/ldapwire/core/testenv"
	"github.com/ldapwire/ldapwire/ldap/an"
	"github.com/ldapwire/ldapwire/ldap/controls"
)

var (
	makeAR       = testenv.MakeAR
	bytesFromHex = testenv.BytesFromHex
)

func TestCascade(t *testing.T) {
	assert, require := makeAR(t)
	f := controls.CascadeFactory{}

	assert.Equal(an.OIDCascade, f.OID())

	v, e := f.NewValue(nil)
	require.NoError(e)
	assert.Equal(controls.Cascade{}, v)
	assert.Equal(an.OIDCascade, v.ControlOID())

	_, e = f.NewValue([]byte{0x04, 0x00})
	assert.ErrorIs(e, controls.ErrCascadeValue)

	b, e := f.EncodeValue(controls.Cascade{})
	require.NoError(e)
	assert.Nil(b)

	_, e = f.EncodeValue(controls.PagedResults{})
	assert.ErrorIs(e, controls.ErrValueType)
}

func TestPagedResults(t *testing.T) {
	assert, require := makeAR(t)
	f := controls.PagedResultsFactory{}

	assert.Equal(an.OIDPagedResults, f.OID())

	paged := controls.PagedResults{Size: 100, Cookie: []byte{0xAB, 0xCD}}
	b, e := f.EncodeValue(paged)
	require.NoError(e)
	assert.Equal(bytesFromHex("30 07 02 01 64 04 02 ABCD"), b)

	v, e := f.NewValue(b)
	require.NoError(e)
	assert.Equal(paged, v)

	// first page: zero size is valid, empty cookie
	b, e = f.EncodeValue(controls.PagedResults{})
	require.NoError(e)
	assert.Equal(bytesFromHex("30 05 02 01 00 04 00"), b)

	for _, input := range []string{
		"30 03 02 01 64",          // missing cookie
		"30 06 04 01 64 04 01 AB", // size not INTEGER
		"02 01 64",                // not a SEQUENCE
		"30 05 02 01 64 04 00 FF", // trailing octet
	} {
		_, e = f.NewValue(bytesFromHex(input))
		assert.Error(e, input)
	}
}

func TestDirSync(t *testing.T) {
	assert, require := makeAR(t)
	f := controls.DirSyncFactory{}

	assert.Equal(an.OIDDirSync, f.OID())

	ds := controls.DirSync{
		Flags:           controls.DirSyncAncestorsFirstOrder,
		MaxReturnLength: 4096,
		Cookie:          []byte{0x01, 0x02, 0x03},
	}
	b, e := f.EncodeValue(ds)
	require.NoError(e)
	assert.Equal(bytesFromHex("30 0D 02 02 0800 02 02 1000 04 03 010203"), b)

	v, e := f.NewValue(b)
	require.NoError(e)
	assert.Equal(ds, v)

	// first request has no cookie yet
	b, e = f.EncodeValue(controls.DirSync{Flags: 1, Cookie: []byte{}})
	require.NoError(e)
	assert.Equal(bytesFromHex("30 08 02 01 01 02 01 00 04 00"), b)

	for _, input := range []string{
		"30 06 02 01 01 02 01 00",             // missing cookie
		"30 0B 04 01 01 02 01 00 04 03 010203", // flags not INTEGER
		"04 00",                               // not a SEQUENCE
	} {
		_, e = f.NewValue(bytesFromHex(input))
		assert.ErrorIs(e, controls.ErrDirSyncFormat, input)
	}

	_, e = f.EncodeValue(controls.Cascade{})
	assert.ErrorIs(e, controls.ErrValueType)
}
