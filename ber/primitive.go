package ber

import (
	"math"
	"strconv"
	"strings"
)

// IntSize returns the minimal size of the two's complement representation
// of v, without superfluous leading 0x00 or 0xFF octets.
func IntSize(v int64) int {
	n := 1
	for v > math.MaxInt8 || v < math.MinInt8 {
		v >>= 8
		n++
	}
	return n
}

// AppendInt appends the minimal big-endian two's complement representation
// of v.
func AppendInt(b []byte, v int64) []byte {
	for i := IntSize(v) - 1; i >= 0; i-- {
		b = append(b, byte(v>>uint(8*i)))
	}
	return b
}

// ParseInt interprets value as a big-endian two's complement signed integer.
// One to eight octets are accepted; the encoder-side minimality rule is not
// enforced here.
func ParseInt(value []byte) (int64, error) {
	if len(value) == 0 || len(value) > 8 {
		return 0, ErrInteger
	}
	v := int64(int8(value[0]))
	for _, octet := range value[1:] {
		v = v<<8 | int64(octet)
	}
	return v, nil
}

// ParseInt32 is ParseInt restricted to the 32-bit range used by LDAP
// message IDs and result codes.
func ParseInt32(value []byte) (int32, error) {
	if len(value) > 4 {
		return 0, ErrInteger
	}
	v, e := ParseInt(value)
	if e != nil {
		return 0, e
	}
	return int32(v), nil
}

// AppendBool appends the canonical BOOLEAN content octet.
func AppendBool(b []byte, v bool) []byte {
	if v {
		return append(b, 0xFF)
	}
	return append(b, 0x00)
}

// ParseBool interprets a BOOLEAN content octet. Any nonzero octet is true.
func ParseBool(value []byte) (bool, error) {
	if len(value) != 1 {
		return false, ErrBoolean
	}
	return value[0] != 0, nil
}

// OIDSize returns the size of the content octets encoding the dotted-decimal
// OBJECT IDENTIFIER oid.
func OIDSize(oid string) (int, error) {
	arcs, e := oidArcs(oid)
	if e != nil {
		return 0, e
	}
	n := base128Size(40*arcs[0] + arcs[1])
	for _, arc := range arcs[2:] {
		n += base128Size(arc)
	}
	return n, nil
}

// AppendOID appends the content octets of the dotted-decimal OBJECT
// IDENTIFIER oid: the first two arcs packed into one subidentifier, every
// subidentifier in base-128 with continuation bits.
func AppendOID(b []byte, oid string) ([]byte, error) {
	arcs, e := oidArcs(oid)
	if e != nil {
		return nil, e
	}
	b = appendBase128(b, 40*arcs[0]+arcs[1])
	for _, arc := range arcs[2:] {
		b = appendBase128(b, arc)
	}
	return b, nil
}

// ParseOID interprets OBJECT IDENTIFIER content octets as a dotted-decimal
// string.
func ParseOID(value []byte) (string, error) {
	if len(value) == 0 {
		return "", ErrOID
	}
	var sb strings.Builder
	first := true
	var arc uint64
	nOctets := 0
	for _, octet := range value {
		if nOctets == 0 && octet == 0x80 {
			return "", ErrOID // padded subidentifier
		}
		nOctets++
		if nOctets > 9 {
			return "", ErrOID
		}
		arc = arc<<7 | uint64(octet&0x7F)
		if octet&0x80 != 0 {
			continue
		}

		if first {
			first = false
			a0 := arc / 40
			if a0 > 2 {
				a0 = 2
			}
			sb.WriteString(strconv.FormatUint(a0, 10))
			sb.WriteByte('.')
			sb.WriteString(strconv.FormatUint(arc-40*a0, 10))
		} else {
			sb.WriteByte('.')
			sb.WriteString(strconv.FormatUint(arc, 10))
		}
		arc, nOctets = 0, 0
	}
	if nOctets != 0 {
		return "", ErrOID // dangling continuation octet
	}
	return sb.String(), nil
}

func oidArcs(oid string) ([]uint64, error) {
	parts := strings.Split(oid, ".")
	if len(parts) < 2 {
		return nil, ErrOID
	}
	arcs := make([]uint64, len(parts))
	for i, part := range parts {
		arc, e := strconv.ParseUint(part, 10, 64)
		if e != nil {
			return nil, ErrOID
		}
		arcs[i] = arc
	}
	if arcs[0] > 2 || (arcs[0] < 2 && arcs[1] >= 40) {
		return nil, ErrOID
	}
	return arcs, nil
}

func base128Size(v uint64) (n int) {
	for n = 1; v >= 0x80; n++ {
		v >>= 7
	}
	return n
}

func appendBase128(b []byte, v uint64) []byte {
	for i := base128Size(v) - 1; i > 0; i-- {
		b = append(b, 0x80|byte(v>>uint(7*i)))
	}
	return append(b, byte(v&0x7F))
}
