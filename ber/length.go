package ber

import (
	"math"

	"golang.org/x/exp/constraints"
)

// NbBytes returns the minimal size of the length octets for a content of n
// bytes: one octet in short form for n below 128, otherwise the long-form
// lead octet plus the smallest big-endian representation of n.
func NbBytes[T constraints.Integer](n T) int {
	v := uint64(n)
	switch {
	case v < 0x80:
		return 1
	case v <= math.MaxUint8:
		return 2
	case v <= math.MaxUint16:
		return 3
	case v <= 0xFFFFFF:
		return 4
	case v <= math.MaxUint32:
		return 5
	case v <= 0xFFFFFFFFFF:
		return 6
	case v <= 0xFFFFFFFFFFFF:
		return 7
	case v <= 0xFFFFFFFFFFFFFF:
		return 8
	default:
		return 9
	}
}

// AppendLength appends the length octets for a content of n bytes, always in
// the minimal form.
func AppendLength(b []byte, n int) []byte {
	if n < 0x80 {
		return append(b, byte(n))
	}
	count := NbBytes(n) - 1
	b = append(b, 0x80|byte(count))
	for i := count - 1; i >= 0; i-- {
		b = append(b, byte(n>>uint(8*i)))
	}
	return b
}

// DecodeLength extracts length octets from the front of wire.
// The indefinite form and redundant long forms are rejected.
func DecodeLength(wire []byte) (n int, rest []byte, e error) {
	if len(wire) == 0 {
		return 0, nil, ErrIncomplete
	}
	lead := wire[0]
	if lead < 0x80 {
		return int(lead), wire[1:], nil
	}
	count := int(lead & 0x7F)
	switch {
	case count == 0:
		return 0, nil, ErrIndefinite
	case count > 8:
		return 0, nil, ErrLengthOctets
	case len(wire) < 1+count:
		return 0, nil, ErrIncomplete
	}

	var v uint64
	for _, octet := range wire[1 : 1+count] {
		v = v<<8 | uint64(octet)
	}
	if wire[1] == 0x00 || (count == 1 && v < 0x80) {
		return 0, nil, ErrLengthForm
	}
	if v > uint64(math.MaxInt) {
		return 0, nil, ErrElementSize
	}
	return int(v), wire[1+count:], nil
}
