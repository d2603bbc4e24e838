package ldap

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru"
	"go.uber.org/zap"

	"github.com/ldapwire/ldapwire/ber"
	"github.com/ldapwire/ldapwire/ldap/an"
)

// CodecConfig configures a Codec.
type CodecConfig struct {
	// Registry supplies control and extended operation factories.
	// nil creates an empty registry owned by the codec.
	Registry *Registry
	// Limits bound the TLV decoder.
	Limits ber.Limits
	// NameCacheCapacity bounds the cache of rendered controlType octets.
	// Zero selects a default.
	NameCacheCapacity int
}

// Codec translates between Messages and their BER encoding. It owns the
// extension registry and the decode limits; per-message state lives in
// throwaway decorators, so a Codec is safe for use by concurrent
// connections.
type Codec struct {
	reg       *Registry
	limits    ber.Limits
	nameCache *lru.Cache
}

// NewCodec creates a Codec.
func NewCodec(cfg CodecConfig) *Codec {
	if cfg.Registry == nil {
		cfg.Registry = NewRegistry()
	}
	if cfg.NameCacheCapacity <= 0 {
		cfg.NameCacheCapacity = 128
	}
	nameCache, _ := lru.New(cfg.NameCacheCapacity)
	return &Codec{
		reg:       cfg.Registry,
		limits:    cfg.Limits,
		nameCache: nameCache,
	}
}

// Registry returns the registry this codec consults.
func (c *Codec) Registry() *Registry {
	return c.reg
}

// NewDecoder creates a streaming TLV decoder with this codec's limits.
// Each connection owns its own decoder.
func (c *Codec) NewDecoder() *ber.Decoder {
	return ber.NewDecoder(c.limits)
}

// oidBytes returns the OCTET STRING TLV of a controlType. The rendering is
// cached; the returned slice must not be modified.
func (c *Codec) oidBytes(oid string) []byte {
	if v, ok := c.nameCache.Get(oid); ok {
		return v.([]byte)
	}
	b := appendStringTLV(make([]byte, 0, primSize(len(oid))), ber.OctetString, oid)
	c.nameCache.Add(oid, b)
	return b
}

// EncodeMessage encodes one message: computeLength over a fresh decorator,
// then a top-down encode into a buffer of exactly the computed size. A size
// mismatch is an unrecoverable encoder defect.
func (c *Codec) EncodeMessage(m *Message) ([]byte, error) {
	d, e := c.decorate(m)
	if e != nil {
		return nil, e
	}

	total := d.computeLength()
	b := make([]byte, 0, total)
	if b, e = d.encode(b); e != nil {
		return nil, e
	}
	if len(b) != total {
		e = fmt.Errorf("%w: computed %d, wrote %d", ErrEncodeMismatch, total, len(b))
		logger.DPanic("encoder inconsistency",
			zap.Int32("message-id", m.ID), zap.Error(e))
		return nil, e
	}
	return b, nil
}

// decorate wraps a message and its operation in encode decorators, resolving
// extension payloads through the registry up front.
func (c *Codec) decorate(m *Message) (*messageDecorator, error) {
	d := &messageDecorator{codec: c, msg: m}

	switch op := m.Op.(type) {
	case *BindRequest:
		d.op = &bindRequestDecorator{req: op}
	case *BindResponse:
		d.op = &bindResponseDecorator{resultDecorator: resultDecorator{res: &op.Result}, resp: op}
	case UnbindRequest, *UnbindRequest:
		d.op = unbindDecorator{}
	case *DelRequest:
		d.op = &delRequestDecorator{req: op}
	case *DelResponse:
		d.op = &resultOpDecorator{resultDecorator: resultDecorator{res: &op.Result}, opTag: an.OpDelResponse}
	case *AbandonRequest:
		d.op = &abandonDecorator{req: op}
	case *CompareRequest:
		d.op = &compareRequestDecorator{req: op}
	case *CompareResponse:
		d.op = &resultOpDecorator{resultDecorator: resultDecorator{res: &op.Result}, opTag: an.OpCompareResponse}
	case *SearchResultDone:
		d.op = &resultOpDecorator{resultDecorator: resultDecorator{res: &op.Result}, opTag: an.OpSearchResultDone}
	case *ExtendedRequest:
		if op.Name == "" {
			return nil, ErrMissingOID
		}
		value, e := c.extendedValueBytes(op.Name, op.Value)
		if e != nil {
			return nil, e
		}
		d.op = &extendedRequestDecorator{req: op, value: value}
	case *ExtendedResponse:
		value, e := c.extendedValueBytes(op.Name, op.Value)
		if e != nil {
			return nil, e
		}
		d.op = &extendedResponseDecorator{resultDecorator: resultDecorator{res: &op.Result}, resp: op, value: value}
	case nil:
		return nil, ErrMissingOp
	default:
		return nil, fmt.Errorf("%w: %T", ErrMissingOp, m.Op)
	}

	for _, ctrl := range m.Controls {
		value, e := c.controlValueBytes(ctrl)
		if e != nil {
			return nil, e
		}
		d.controls = append(d.controls, controlEncoding{
			oid:      ctrl.OID,
			critical: ctrl.Critical,
			value:    value,
		})
	}
	return d, nil
}

func (c *Codec) controlValueBytes(ctrl Control) ([]byte, error) {
	switch v := ctrl.Value.(type) {
	case nil:
		return nil, nil
	case OpaqueControlValue:
		return v.Bytes, nil
	default:
		f, ok := c.reg.Control(ctrl.OID)
		if !ok {
			return nil, fmt.Errorf("%w: control %s", ErrNoFactory, ctrl.OID)
		}
		return f.EncodeValue(v)
	}
}

func (c *Codec) extendedValueBytes(oid string, v ExtendedValue) ([]byte, error) {
	switch v := v.(type) {
	case nil:
		return nil, nil
	case OpaqueExtendedValue:
		return v.Bytes, nil
	default:
		f, ok := c.reg.ExtOp(oid)
		if !ok {
			return nil, fmt.Errorf("%w: extended operation %s", ErrNoFactory, oid)
		}
		return f.EncodeValue(v)
	}
}
