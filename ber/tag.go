package ber

import "fmt"

// Class is the tag class encoded in bits 7-6 of the identifier octet.
type Class uint8

// Tag classes.
const (
	ClassUniversal   Class = 0x00
	ClassApplication Class = 0x40
	ClassContext     Class = 0x80
	ClassPrivate     Class = 0xC0
)

func (c Class) String() string {
	switch c {
	case ClassUniversal:
		return "UNIVERSAL"
	case ClassApplication:
		return "APPLICATION"
	case ClassContext:
		return "CONTEXT"
	case ClassPrivate:
		return "PRIVATE"
	}
	return fmt.Sprintf("%02X", uint8(c))
}

// Universal tag numbers used by LDAP.
const (
	NumBoolean     = 0x01
	NumInteger     = 0x02
	NumOctetString = 0x04
	NumNull        = 0x05
	NumOID         = 0x06
	NumEnumerated  = 0x0A
	NumSequence    = 0x10
	NumSet         = 0x11
)

// Tag identifies one TLV element.
type Tag struct {
	Class       Class
	Constructed bool
	Number      uint32
}

// Common universal tags.
var (
	Boolean     = Tag{Class: ClassUniversal, Number: NumBoolean}
	Integer     = Tag{Class: ClassUniversal, Number: NumInteger}
	OctetString = Tag{Class: ClassUniversal, Number: NumOctetString}
	Null        = Tag{Class: ClassUniversal, Number: NumNull}
	OID         = Tag{Class: ClassUniversal, Number: NumOID}
	Enumerated  = Tag{Class: ClassUniversal, Number: NumEnumerated}
	Sequence    = Tag{Class: ClassUniversal, Constructed: true, Number: NumSequence}
	Set         = Tag{Class: ClassUniversal, Constructed: true, Number: NumSet}
)

// Context returns a context-specific tag.
func Context(num uint32, constructed bool) Tag {
	return Tag{Class: ClassContext, Constructed: constructed, Number: num}
}

// Application returns an application tag.
func Application(num uint32, constructed bool) Tag {
	return Tag{Class: ClassApplication, Constructed: constructed, Number: num}
}

func (t Tag) String() string {
	kind := "primitive"
	if t.Constructed {
		kind = "constructed"
	}
	return fmt.Sprintf("%s %d %s", t.Class, t.Number, kind)
}

// Size returns the encoded size of the identifier octets.
func (t Tag) Size() int {
	switch {
	case t.Number < 0x1F:
		return 1
	case t.Number < 1<<7:
		return 2
	case t.Number < 1<<14:
		return 3
	case t.Number < 1<<21:
		return 4
	case t.Number < 1<<28:
		return 5
	default:
		return 6
	}
}

// Append appends the identifier octets to a buffer.
func (t Tag) Append(b []byte) []byte {
	lead := byte(t.Class)
	if t.Constructed {
		lead |= 0x20
	}
	if t.Number < 0x1F {
		return append(b, lead|byte(t.Number))
	}
	b = append(b, lead|0x1F)
	for i := t.Size() - 2; i > 0; i-- {
		b = append(b, 0x80|byte(t.Number>>uint(7*i)))
	}
	return append(b, byte(t.Number&0x7F))
}
