package ber

// Limits bound what the decoder accepts from untrusted input.
type Limits struct {
	// MaxSize is the maximum encoded size of one element, header included.
	MaxSize int
	// MaxDepth is the maximum nesting depth of constructed elements.
	MaxDepth int
	// MaxTagOctets is the maximum number of continuation octets in a
	// high-tag-number form identifier.
	MaxTagOctets int
}

// DefaultLimits returns the limits applied when none are configured.
func DefaultLimits() Limits {
	return Limits{
		MaxSize:      8 << 20,
		MaxDepth:     32,
		MaxTagOctets: 4,
	}
}

func (l Limits) applyDefaults() Limits {
	def := DefaultLimits()
	if l.MaxSize <= 0 {
		l.MaxSize = def.MaxSize
	}
	if l.MaxDepth <= 0 {
		l.MaxDepth = def.MaxDepth
	}
	if l.MaxTagOctets <= 0 {
		l.MaxTagOctets = def.MaxTagOctets
	}
	return l
}

type decoderState uint8

const (
	wantTag decoderState = iota
	wantLength
	wantValue
)

type openFrame struct {
	el        *Element
	remaining int
}

// Decoder recognizes TLV elements in a byte stream delivered in arbitrary
// chunks. Feed input with Write, poll complete elements with Next. All
// partial state lives in the Decoder; discarding it discards the partial
// decode.
type Decoder struct {
	limits Limits

	state  decoderState
	hdr    []byte // identifier or length octets of the element being opened
	hdrLen int    // header octets consumed since the element started
	tag    Tag
	cur    *Element // primitive element whose content is being filled
	fill   int
	stack  []openFrame

	complete []*Element
	offset   int
	err      error
}

// NewDecoder creates a Decoder. Zero-valued limits are replaced with
// DefaultLimits.
func NewDecoder(limits Limits) *Decoder {
	return &Decoder{limits: limits.applyDefaults()}
}

// Write feeds input into the decoder. Malformed input puts the decoder in a
// failed state; the offending byte and everything after it are not consumed.
func (d *Decoder) Write(p []byte) (n int, e error) {
	for n < len(p) {
		if d.err != nil {
			return n, d.err
		}

		if d.state == wantValue {
			take := len(p) - n
			if need := len(d.cur.Value) - d.fill; take > need {
				take = need
			}
			copy(d.cur.Value[d.fill:], p[n:n+take])
			d.fill += take
			n += take
			d.offset += take
			if d.fill == len(d.cur.Value) {
				el := d.cur
				d.cur, d.fill = nil, 0
				d.state = wantTag
				d.childDone(el)
			}
			continue
		}

		if e := d.feedHeader(p[n]); e != nil {
			d.err = &DecodeError{Offset: d.offset, Err: e}
			return n, d.err
		}
		n++
		d.offset++
	}
	return n, nil
}

// Next returns the next complete top-level element, or nil if the decoder
// needs more input. Once the decoder has failed, Next returns the error.
func (d *Decoder) Next() (*Element, error) {
	if len(d.complete) > 0 {
		el := d.complete[0]
		d.complete = d.complete[1:]
		return el, nil
	}
	return nil, d.err
}

// Pending returns true if a partially decoded element is buffered.
func (d *Decoder) Pending() bool {
	return d.state != wantTag || d.hdrLen > 0 || len(d.stack) > 0
}

func (d *Decoder) feedHeader(c byte) error {
	d.hdr = append(d.hdr, c)
	d.hdrLen++
	switch d.state {
	case wantTag:
		tag, _, e := decodeTag(d.hdr, d.limits)
		switch e {
		case nil:
			d.tag = tag
			d.hdr = d.hdr[:0]
			d.state = wantLength
		case ErrIncomplete:
		default:
			return e
		}
	case wantLength:
		length, _, e := DecodeLength(d.hdr)
		switch e {
		case nil:
			d.hdr = d.hdr[:0]
			return d.open(length)
		case ErrIncomplete:
		default:
			return e
		}
	}
	return nil
}

// open starts the element whose header just completed, charging its full
// size against the enclosing budget. length comes from untrusted input and
// may be near MaxInt; it is compared by subtraction so that header+length
// cannot overflow, and nothing is allocated past this point unless the
// budget admits the whole element.
func (d *Decoder) open(length int) error {
	hdrLen := d.hdrLen
	d.hdrLen = 0
	if len(d.stack) == 0 {
		if length > d.limits.MaxSize-hdrLen {
			return ErrElementSize
		}
	} else {
		top := &d.stack[len(d.stack)-1]
		if length > top.remaining-hdrLen {
			return ErrBudget
		}
		top.remaining -= hdrLen + length
	}

	el := &Element{Tag: d.tag}
	d.state = wantTag
	if d.tag.Constructed {
		if length == 0 {
			d.childDone(el)
			return nil
		}
		if len(d.stack) >= d.limits.MaxDepth {
			return ErrNesting
		}
		d.stack = append(d.stack, openFrame{el: el, remaining: length})
		return nil
	}

	el.Value = make([]byte, length)
	if length == 0 {
		d.childDone(el)
		return nil
	}
	d.cur = el
	d.state = wantValue
	return nil
}

// childDone attaches a completed element to its parent, popping every
// enclosing frame whose declared length is now fully consumed.
func (d *Decoder) childDone(el *Element) {
	for {
		if len(d.stack) == 0 {
			d.complete = append(d.complete, el)
			return
		}
		top := &d.stack[len(d.stack)-1]
		top.el.Children = append(top.el.Children, el)
		if top.remaining > 0 {
			return
		}
		el = top.el
		d.stack = d.stack[:len(d.stack)-1]
	}
}
