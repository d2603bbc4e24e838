package ber

import "math"

// Element is one TLV node: a primitive leaf carrying raw content octets, or
// a constructed node carrying ordered children. The zero Element is invalid.
type Element struct {
	Tag Tag

	// Value is the content of a primitive element.
	Value []byte
	// Children are the nested elements of a constructed element, in
	// encoding order.
	Children []*Element
}

// NewPrimitive constructs a primitive element.
func NewPrimitive(tag Tag, value []byte) *Element {
	tag.Constructed = false
	return &Element{Tag: tag, Value: value}
}

// NewConstructed constructs a constructed element.
func NewConstructed(tag Tag, children ...*Element) *Element {
	tag.Constructed = true
	return &Element{Tag: tag, Children: children}
}

// ContentLength returns the length of the content octets.
func (el *Element) ContentLength() (n int) {
	if !el.Tag.Constructed {
		return len(el.Value)
	}
	for _, child := range el.Children {
		n += child.Size()
	}
	return n
}

// Size returns the encoded size: identifier octets, length octets, content.
func (el *Element) Size() int {
	n := el.ContentLength()
	return el.Tag.Size() + NbBytes(n) + n
}

// Append appends the encoding of this element to a buffer.
func (el *Element) Append(b []byte) []byte {
	b = el.Tag.Append(b)
	b = AppendLength(b, el.ContentLength())
	if !el.Tag.Constructed {
		return append(b, el.Value...)
	}
	for _, child := range el.Children {
		b = child.Append(b)
	}
	return b
}

// Bytes returns the encoding of this element.
func (el *Element) Bytes() []byte {
	return el.Append(make([]byte, 0, el.Size()))
}

// Int parses the content as INTEGER or ENUMERATED.
func (el *Element) Int() (int64, error) {
	if el.Tag.Constructed {
		return 0, ErrPrimitive
	}
	return ParseInt(el.Value)
}

// Bool parses the content as BOOLEAN.
func (el *Element) Bool() (bool, error) {
	if el.Tag.Constructed {
		return false, ErrPrimitive
	}
	return ParseBool(el.Value)
}

// String returns the content octets as a string.
func (el *Element) String() string {
	return string(el.Value)
}

// OID parses the content as OBJECT IDENTIFIER.
func (el *Element) OID() (string, error) {
	if el.Tag.Constructed {
		return "", ErrPrimitive
	}
	return ParseOID(el.Value)
}

// Parse extracts the first complete element from wire, decoding nested
// elements recursively under DefaultLimits.
func Parse(wire []byte) (el *Element, rest []byte, e error) {
	return ParseLimits(wire, DefaultLimits())
}

// ParseLimits is Parse with explicit limits.
func ParseLimits(wire []byte, limits Limits) (el *Element, rest []byte, e error) {
	limits = limits.applyDefaults()
	el, rest, e = parseElement(wire, limits, limits.MaxSize, 0)
	if e != nil {
		return nil, nil, e
	}
	return el, rest, nil
}

func parseElement(wire []byte, limits Limits, budget, depth int) (el *Element, rest []byte, e error) {
	if depth > limits.MaxDepth {
		return nil, nil, ErrNesting
	}

	tag, rest, e := decodeTag(wire, limits)
	if e != nil {
		return nil, nil, e
	}
	length, rest, e := DecodeLength(rest)
	if e != nil {
		return nil, nil, e
	}
	// subtract rather than add: a declared length near MaxInt must not
	// overflow past the budget check
	if hdrLen := len(wire) - len(rest); length > budget-hdrLen {
		if depth == 0 {
			return nil, nil, ErrElementSize
		}
		return nil, nil, ErrBudget
	}
	if len(rest) < length {
		return nil, nil, ErrIncomplete
	}

	el = &Element{Tag: tag}
	content := rest[:length]
	rest = rest[length:]
	if !tag.Constructed {
		el.Value = content
		return el, rest, nil
	}
	for len(content) > 0 {
		var child *Element
		if child, content, e = parseElement(content, limits, len(content), depth+1); e != nil {
			return nil, nil, e
		}
		el.Children = append(el.Children, child)
	}
	return el, rest, nil
}

func decodeTag(wire []byte, limits Limits) (tag Tag, rest []byte, e error) {
	if len(wire) == 0 {
		return Tag{}, nil, ErrIncomplete
	}
	lead := wire[0]
	tag.Class = Class(lead & 0xC0)
	tag.Constructed = lead&0x20 != 0
	if num := lead & 0x1F; num != 0x1F {
		tag.Number = uint32(num)
		return tag, wire[1:], nil
	}

	// high tag number form: base-128 continuation octets
	var num uint64
	for i, octet := range wire[1:] {
		if i >= limits.MaxTagOctets {
			return Tag{}, nil, ErrTagOctets
		}
		num = num<<7 | uint64(octet&0x7F)
		if num > math.MaxUint32 {
			return Tag{}, nil, ErrTagOctets
		}
		if octet&0x80 == 0 {
			tag.Number = uint32(num)
			return tag, wire[2+i:], nil
		}
	}
	return Tag{}, nil, ErrIncomplete
}
