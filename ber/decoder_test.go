package ber_test

import (
	"testing"

	"github.com/ldapwire/ldapwire/ber"
)

// a bind request message wrapped with one control, nested three deep
var decoderInput = bytesFromHex(`
	30 2F
		02 01 05
		60 1A
			02 01 03
			04 0F 636E3D61646D696E2C64633D636F6D
			80 04 73656372
		A0 0E
			30 0C
				04 0A 312E322E332E342E3530
`)

func TestDecoderWhole(t *testing.T) {
	assert, require := makeAR(t)

	expected, rest, e := ber.Parse(decoderInput)
	require.NoError(e)
	require.Len(rest, 0)

	d := ber.NewDecoder(ber.Limits{})
	_, e = d.Write(decoderInput)
	require.NoError(e)

	el, e := d.Next()
	require.NoError(e)
	require.NotNil(el)
	assert.Equal(expected, el)
	assert.False(d.Pending())

	el, e = d.Next()
	assert.NoError(e)
	assert.Nil(el)
}

func TestDecoderEverySplit(t *testing.T) {
	assert, require := makeAR(t)

	expected, _, e := ber.Parse(decoderInput)
	require.NoError(e)

	for i := 1; i < len(decoderInput); i++ {
		d := ber.NewDecoder(ber.Limits{})
		_, e = d.Write(decoderInput[:i])
		require.NoError(e, "split %d", i)

		el, e := d.Next()
		require.NoError(e, "split %d", i)
		require.Nil(el, "split %d", i)
		assert.True(d.Pending(), "split %d", i)

		_, e = d.Write(decoderInput[i:])
		require.NoError(e, "split %d", i)

		el, e = d.Next()
		require.NoError(e, "split %d", i)
		if assert.NotNil(el, "split %d", i) {
			assert.Equal(expected, el, "split %d", i)
		}
	}
}

func TestDecoderByteAtATime(t *testing.T) {
	assert, require := makeAR(t)

	expected, _, e := ber.Parse(decoderInput)
	require.NoError(e)

	d := ber.NewDecoder(ber.Limits{})
	for _, octet := range decoderInput {
		_, e = d.Write([]byte{octet})
		require.NoError(e)
	}

	el, e := d.Next()
	require.NoError(e)
	assert.Equal(expected, el)
}

func TestDecoderMultiplePDUs(t *testing.T) {
	assert, require := makeAR(t)

	one := ber.NewConstructed(ber.Sequence,
		ber.NewPrimitive(ber.Integer, ber.AppendInt(nil, 1)),
	)
	two := ber.NewPrimitive(ber.OctetString, []byte("abc"))
	wire := two.Append(one.Bytes())

	d := ber.NewDecoder(ber.Limits{})
	_, e := d.Write(wire)
	require.NoError(e)

	el, e := d.Next()
	require.NoError(e)
	assert.Equal(one, el)
	el, e = d.Next()
	require.NoError(e)
	assert.Equal(two, el)
	el, e = d.Next()
	assert.NoError(e)
	assert.Nil(el)
}

func TestDecoderMalformed(t *testing.T) {
	assert, _ := makeAR(t)

	tests := []struct {
		input  string
		limits ber.Limits
		err    error
	}{
		{input: "30 02 02 05", err: ber.ErrBudget},
		{input: "30 03 04 0A 00", err: ber.ErrBudget},
		{input: "30 80", err: ber.ErrIndefinite},
		{input: "04 8100", err: ber.ErrLengthForm},
		{input: "04 890102030405060708FF", err: ber.ErrLengthOctets},
		{input: "9F 8182838485 01 00", err: ber.ErrTagOctets},
		{input: "04 84FFFFFFFF", err: ber.ErrElementSize},
		{input: "04 887FFFFFFFFFFFFFFF", err: ber.ErrElementSize},       // near-MaxInt length must not wrap past the limit
		{input: "30 04 04 887FFFFFFFFFFFFFFF", err: ber.ErrBudget},      // nor past the parent budget
		{input: "30 10 04 0E 0000", limits: ber.Limits{MaxSize: 8}, err: ber.ErrElementSize},
		{input: "30 06 30 04 30 02 30 00", limits: ber.Limits{MaxDepth: 2}, err: ber.ErrNesting},
	}
	for _, tt := range tests {
		d := ber.NewDecoder(tt.limits)
		_, e := d.Write(bytesFromHex(tt.input))
		assert.ErrorIs(e, tt.err, tt.input)

		// the failure is sticky
		_, e = d.Write([]byte{0x00})
		assert.ErrorIs(e, tt.err, tt.input)
		_, e = d.Next()
		assert.ErrorIs(e, tt.err, tt.input)
	}
}

func TestDecoderOffsets(t *testing.T) {
	assert, _ := makeAR(t)

	d := ber.NewDecoder(ber.Limits{})
	_, e := d.Write(bytesFromHex("30 03 02 01 00 30 80"))
	var de *ber.DecodeError
	if assert.ErrorAs(e, &de) {
		assert.ErrorIs(de.Err, ber.ErrIndefinite)
		assert.Equal(6, de.Offset)
	}

	// the element completed before the error is still delivered
	el, e2 := d.Next()
	assert.NoError(e2)
	assert.NotNil(el)
}
