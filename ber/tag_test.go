package ber_test

import (
	"math"
	"testing"

	"github.com/ldapwire/ldapwire/ber"
)

func TestTagNumberRange(t *testing.T) {
	assert, _ := makeAR(t)

	// every identifier size boundary encodes and decodes unchanged
	limits := ber.Limits{MaxTagOctets: 5}
	for _, number := range []uint32{
		0, 30, 31, 127, 128, 1<<14 - 1, 1 << 14, 1<<21 - 1, 1 << 21,
		1<<28 - 1, 1 << 28, math.MaxUint32,
	} {
		tag := ber.Context(number, false)
		wire := ber.AppendLength(tag.Append(nil), 0)
		assert.Len(wire, tag.Size()+1, "%d", number)

		el, rest, e := ber.ParseLimits(wire, limits)
		if assert.NoError(e, "%d", number) {
			assert.Len(rest, 0, "%d", number)
			assert.Equal(tag, el.Tag, "%d", number)
		}
	}

	// 2^32 no longer fits a tag number
	_, _, e := ber.ParseLimits(bytesFromHex("9F 90 80 80 80 00 00"), limits)
	assert.ErrorIs(e, ber.ErrTagOctets)

	// default limits cap the continuation octets earlier
	_, _, e = ber.Parse(bytesFromHex("9F 8F FF FF FF 7F 00"))
	assert.ErrorIs(e, ber.ErrTagOctets)
}
