package ldap

import (
	"github.com/ldapwire/ldapwire/ber"
	"github.com/ldapwire/ldapwire/ldap/an"
)

// opEncoder is the two-phase encode contract. computeLength caches the
// lengths of every nested construct bottom-up and returns the total encoded
// size of the construct, tag and length octets included; encode then writes
// top-down, reusing the caches. encode must not be called before
// computeLength, and computeLength must be called again after the wrapped
// value mutates.
type opEncoder interface {
	computeLength() int
	encode(b []byte) ([]byte, error)
}

// primSize returns the encoded size of a single-octet-tag primitive with n
// content octets.
func primSize(n int) int {
	return 1 + ber.NbBytes(n) + n
}

func appendTLV(b []byte, tag ber.Tag, content []byte) []byte {
	b = tag.Append(b)
	b = ber.AppendLength(b, len(content))
	return append(b, content...)
}

func appendStringTLV(b []byte, tag ber.Tag, s string) []byte {
	b = tag.Append(b)
	b = ber.AppendLength(b, len(s))
	return append(b, s...)
}

func appendIntTLV(b []byte, tag ber.Tag, v int64) []byte {
	b = tag.Append(b)
	b = ber.AppendLength(b, ber.IntSize(v))
	return ber.AppendInt(b, v)
}

// messageDecorator wraps a Message for one encode pass. It owns the cached
// envelope lengths and the rendered control values; the Message itself is
// not touched.
type messageDecorator struct {
	codec *Codec
	msg   *Message
	op    opEncoder

	controls       []controlEncoding
	controlsLength int
	messageLength  int
}

type controlEncoding struct {
	oid      string
	critical bool
	value    []byte // rendered controlValue, nil when absent
	length   int    // content length of the control SEQUENCE
}

func (d *messageDecorator) computeLength() int {
	n := primSize(ber.IntSize(int64(d.msg.ID)))
	n += d.op.computeLength()

	if len(d.controls) > 0 {
		total := 0
		for i := range d.controls {
			c := &d.controls[i]
			c.length = primSize(len(c.oid))
			if c.critical {
				c.length += primSize(1)
			}
			if c.value != nil {
				c.length += primSize(len(c.value))
			}
			total += 1 + ber.NbBytes(c.length) + c.length
		}
		d.controlsLength = total
		n += 1 + ber.NbBytes(total) + total
	}

	d.messageLength = n
	return 1 + ber.NbBytes(n) + n
}

func (d *messageDecorator) encode(b []byte) ([]byte, error) {
	b = ber.Sequence.Append(b)
	b = ber.AppendLength(b, d.messageLength)
	b = appendIntTLV(b, ber.Integer, int64(d.msg.ID))

	b, e := d.op.encode(b)
	if e != nil {
		return nil, e
	}

	if len(d.controls) > 0 {
		b = ber.Context(an.TagControls, true).Append(b)
		b = ber.AppendLength(b, d.controlsLength)
		for _, c := range d.controls {
			b = ber.Sequence.Append(b)
			b = ber.AppendLength(b, c.length)
			b = append(b, d.codec.oidBytes(c.oid)...)
			if c.critical {
				b = appendTLV(b, ber.Boolean, []byte{0xFF})
			}
			if c.value != nil {
				b = appendTLV(b, ber.OctetString, c.value)
			}
		}
	}
	return b, nil
}

type bindRequestDecorator struct {
	req        *BindRequest
	saslLength int
	bindLength int
}

func (d *bindRequestDecorator) computeLength() int {
	req := d.req
	n := primSize(ber.IntSize(int64(req.Version)))
	n += primSize(len(req.Name))
	if req.Simple {
		n += primSize(len(req.Credentials))
	} else {
		sasl := primSize(len(req.Mechanism))
		if req.Credentials != nil {
			sasl += primSize(len(req.Credentials))
		}
		d.saslLength = sasl
		n += 1 + ber.NbBytes(sasl) + sasl
	}
	d.bindLength = n
	return 1 + ber.NbBytes(n) + n
}

func (d *bindRequestDecorator) encode(b []byte) ([]byte, error) {
	req := d.req
	b = ber.Application(an.OpBindRequest, true).Append(b)
	b = ber.AppendLength(b, d.bindLength)
	b = appendIntTLV(b, ber.Integer, int64(req.Version))
	b = appendStringTLV(b, ber.OctetString, req.Name)
	if req.Simple {
		b = appendTLV(b, ber.Context(an.TagSimpleAuth, false), req.Credentials)
	} else {
		b = ber.Context(an.TagSaslAuth, true).Append(b)
		b = ber.AppendLength(b, d.saslLength)
		b = appendStringTLV(b, ber.OctetString, req.Mechanism)
		if req.Credentials != nil {
			b = appendTLV(b, ber.OctetString, req.Credentials)
		}
	}
	return b, nil
}

// resultDecorator caches the lengths of the LDAPResult components shared by
// response decorators.
type resultDecorator struct {
	res            *Result
	referralLength int
}

func (d *resultDecorator) contentLength() int {
	res := d.res
	n := primSize(ber.IntSize(int64(res.Code)))
	n += primSize(len(res.MatchedDN))
	n += primSize(len(res.Diagnostic))
	if len(res.Referral) > 0 {
		total := 0
		for _, url := range res.Referral {
			total += primSize(len(url))
		}
		d.referralLength = total
		n += 1 + ber.NbBytes(total) + total
	}
	return n
}

func (d *resultDecorator) encodeContent(b []byte) []byte {
	res := d.res
	b = appendIntTLV(b, ber.Enumerated, int64(res.Code))
	b = appendStringTLV(b, ber.OctetString, res.MatchedDN)
	b = appendStringTLV(b, ber.OctetString, res.Diagnostic)
	if len(res.Referral) > 0 {
		b = ber.Context(an.TagReferral, true).Append(b)
		b = ber.AppendLength(b, d.referralLength)
		for _, url := range res.Referral {
			b = appendStringTLV(b, ber.OctetString, url)
		}
	}
	return b
}

// resultOpDecorator encodes an operation that is exactly an LDAPResult.
type resultOpDecorator struct {
	resultDecorator
	opTag  uint32
	length int
}

func (d *resultOpDecorator) computeLength() int {
	d.length = d.contentLength()
	return 1 + ber.NbBytes(d.length) + d.length
}

func (d *resultOpDecorator) encode(b []byte) ([]byte, error) {
	b = ber.Application(d.opTag, true).Append(b)
	b = ber.AppendLength(b, d.length)
	return d.encodeContent(b), nil
}

type bindResponseDecorator struct {
	resultDecorator
	resp   *BindResponse
	length int
}

func (d *bindResponseDecorator) computeLength() int {
	n := d.contentLength()
	if d.resp.ServerSaslCreds != nil {
		n += primSize(len(d.resp.ServerSaslCreds))
	}
	d.length = n
	return 1 + ber.NbBytes(n) + n
}

func (d *bindResponseDecorator) encode(b []byte) ([]byte, error) {
	b = ber.Application(an.OpBindResponse, true).Append(b)
	b = ber.AppendLength(b, d.length)
	b = d.encodeContent(b)
	if d.resp.ServerSaslCreds != nil {
		b = appendTLV(b, ber.Context(an.TagServerSaslCreds, false), d.resp.ServerSaslCreds)
	}
	return b, nil
}

type unbindDecorator struct{}

func (unbindDecorator) computeLength() int {
	return primSize(0)
}

func (unbindDecorator) encode(b []byte) ([]byte, error) {
	b = ber.Application(an.OpUnbindRequest, false).Append(b)
	return ber.AppendLength(b, 0), nil
}

type delRequestDecorator struct {
	req *DelRequest
}

func (d *delRequestDecorator) computeLength() int {
	return primSize(len(d.req.DN))
}

func (d *delRequestDecorator) encode(b []byte) ([]byte, error) {
	return appendStringTLV(b, ber.Application(an.OpDelRequest, false), d.req.DN), nil
}

type abandonDecorator struct {
	req *AbandonRequest
}

func (d *abandonDecorator) computeLength() int {
	return primSize(ber.IntSize(int64(d.req.MessageID)))
}

func (d *abandonDecorator) encode(b []byte) ([]byte, error) {
	return appendIntTLV(b, ber.Application(an.OpAbandonRequest, false), int64(d.req.MessageID)), nil
}

type compareRequestDecorator struct {
	req           *CompareRequest
	avaLength     int
	compareLength int
}

func (d *compareRequestDecorator) computeLength() int {
	req := d.req
	d.avaLength = primSize(len(req.Attribute)) + primSize(len(req.Value))
	d.compareLength = primSize(len(req.Entry)) + 1 + ber.NbBytes(d.avaLength) + d.avaLength
	return 1 + ber.NbBytes(d.compareLength) + d.compareLength
}

func (d *compareRequestDecorator) encode(b []byte) ([]byte, error) {
	req := d.req
	b = ber.Application(an.OpCompareRequest, true).Append(b)
	b = ber.AppendLength(b, d.compareLength)
	b = appendStringTLV(b, ber.OctetString, req.Entry)
	b = ber.Sequence.Append(b)
	b = ber.AppendLength(b, d.avaLength)
	b = appendStringTLV(b, ber.OctetString, req.Attribute)
	b = appendTLV(b, ber.OctetString, req.Value)
	return b, nil
}

type extendedRequestDecorator struct {
	req    *ExtendedRequest
	value  []byte // rendered requestValue, nil when absent
	length int
}

func (d *extendedRequestDecorator) computeLength() int {
	n := primSize(len(d.req.Name))
	if d.value != nil {
		n += primSize(len(d.value))
	}
	d.length = n
	return 1 + ber.NbBytes(n) + n
}

func (d *extendedRequestDecorator) encode(b []byte) ([]byte, error) {
	b = ber.Application(an.OpExtendedRequest, true).Append(b)
	b = ber.AppendLength(b, d.length)
	b = appendStringTLV(b, ber.Context(an.TagExtendedRequestName, false), d.req.Name)
	if d.value != nil {
		b = appendTLV(b, ber.Context(an.TagExtendedRequestValue, false), d.value)
	}
	return b, nil
}

type extendedResponseDecorator struct {
	resultDecorator
	resp   *ExtendedResponse
	value  []byte // rendered responseValue, nil when absent
	length int
}

func (d *extendedResponseDecorator) computeLength() int {
	n := d.contentLength()
	if d.resp.Name != "" {
		n += primSize(len(d.resp.Name))
	}
	if d.value != nil {
		n += primSize(len(d.value))
	}
	d.length = n
	return 1 + ber.NbBytes(n) + n
}

func (d *extendedResponseDecorator) encode(b []byte) ([]byte, error) {
	b = ber.Application(an.OpExtendedResponse, true).Append(b)
	b = ber.AppendLength(b, d.length)
	b = d.encodeContent(b)
	if d.resp.Name != "" {
		b = appendStringTLV(b, ber.Context(an.TagExtendedResponseName, false), d.resp.Name)
	}
	if d.value != nil {
		b = appendTLV(b, ber.Context(an.TagExtendedResponseValue, false), d.value)
	}
	return b, nil
}
