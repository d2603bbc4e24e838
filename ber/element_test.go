package ber_test

import (
	"testing"

	"github.com/ldapwire/ldapwire/ber"
)

func TestElementEncode(t *testing.T) {
	assert, _ := makeAR(t)

	el := ber.NewConstructed(ber.Sequence,
		ber.NewPrimitive(ber.Integer, ber.AppendInt(nil, 3)),
		ber.NewConstructed(ber.Application(0, true),
			ber.NewPrimitive(ber.Integer, ber.AppendInt(nil, 515)),
			ber.NewPrimitive(ber.OctetString, []byte("cn=admin,dc=example,dc=com")),
			ber.NewPrimitive(ber.Context(0, false), []byte("secret")),
		),
	)

	wire := el.Bytes()
	assert.Equal(el.Size(), len(wire))
	assert.Equal(el.ContentLength()+2, len(wire))

	decoded, rest, e := ber.Parse(wire)
	if assert.NoError(e) {
		assert.Len(rest, 0)
		assert.Equal(el, decoded)
	}

	// trailing input is returned as rest
	decoded, rest, e = ber.Parse(append(el.Bytes(), 0xA0))
	if assert.NoError(e) {
		assert.Equal(el, decoded)
		assert.Len(rest, 1)
	}
}

func TestElementPrimitives(t *testing.T) {
	assert, _ := makeAR(t)

	el, _, e := ber.Parse(bytesFromHex("30 0F 02 01 7F 01 01 FF 06 03 550403 04 02 6869"))
	if assert.NoError(e) && assert.Len(el.Children, 4) {
		v, e := el.Children[0].Int()
		assert.NoError(e)
		assert.EqualValues(127, v)

		b, e := el.Children[1].Bool()
		assert.NoError(e)
		assert.True(b)

		oid, e := el.Children[2].OID()
		assert.NoError(e)
		assert.Equal("2.5.4.3", oid)

		assert.Equal("hi", el.Children[3].String())

		_, e = el.Int()
		assert.ErrorIs(e, ber.ErrPrimitive)
	}
}

func TestHighTagNumber(t *testing.T) {
	assert, _ := makeAR(t)

	tag := ber.Context(100, false)
	assert.Equal(2, tag.Size())
	wire := ber.NewPrimitive(tag, []byte{0x01}).Bytes()
	bytesEqual(assert, bytesFromHex("9F64 01 01"), wire)

	el, _, e := ber.Parse(wire)
	if assert.NoError(e) {
		assert.Equal(tag, el.Tag)
	}

	// continuation octets beyond the configured bound
	_, _, e = ber.Parse(bytesFromHex("9F 8182838485 01 00"))
	assert.ErrorIs(e, ber.ErrTagOctets)
}

func TestParseMalformed(t *testing.T) {
	assert, _ := makeAR(t)

	tests := []struct {
		input string
		err   error
	}{
		{"", ber.ErrIncomplete},
		{"30", ber.ErrIncomplete},
		{"30 02 02 05", ber.ErrBudget},         // child length exceeds parent
		{"30 03 04 0A 00", ber.ErrBudget},      // child length exceeds parent
		{"30 80", ber.ErrIndefinite},
		{"04 830000FF 00", ber.ErrLengthForm},  // padded length
		{"04 84FFFFFFFF", ber.ErrElementSize},  // length bomb
		{"04 887FFFFFFFFFFFFFFF", ber.ErrElementSize}, // near-MaxInt length must not wrap past the limit
	}
	for _, tt := range tests {
		_, _, e := ber.Parse(bytesFromHex(tt.input))
		assert.ErrorIs(e, tt.err, tt.input)
	}
}
