package ldap

import (
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go4.org/intern"

	"github.com/ldapwire/ldapwire/ber"
	"github.com/ldapwire/ldapwire/ldap/an"
)

// internString interns decoded protocol strings (controlType, requestName,
// SASL mechanism) that recur on every message of a long-lived connection.
func internString(b []byte) string {
	return intern.GetByString(string(b)).Get().(string)
}

// nonEmpty normalizes a zero-length optional field to nil so that absent
// and empty encode identically.
func nonEmpty(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	return b
}

// ReadMessage decodes the next complete message from a streaming decoder.
// msg is nil without error when more input is needed. scoped aggregates
// failures confined to individual controls or extension payloads; the
// message is still valid with those degraded to opaque values.
func (c *Codec) ReadMessage(d *ber.Decoder) (msg *Message, scoped error, e error) {
	el, e := d.Next()
	if e != nil || el == nil {
		return nil, nil, e
	}
	return c.DecodeMessage(el)
}

// DecodeMessage assembles a Message from a decoded TLV tree.
func (c *Codec) DecodeMessage(el *ber.Element) (msg *Message, scoped error, e error) {
	if el.Tag != ber.Sequence || len(el.Children) < 2 || len(el.Children) > 3 {
		return nil, nil, ErrMessageFormat
	}
	if el.Children[0].Tag != ber.Integer {
		return nil, nil, ErrMessageFormat
	}
	id, e := ber.ParseInt32(el.Children[0].Value)
	if e != nil {
		return nil, nil, e
	}

	op, opScoped, e := c.decodeOp(el.Children[1])
	if e != nil {
		return nil, nil, e
	}
	scoped = opScoped

	msg = &Message{ID: id, Op: op}
	if len(el.Children) == 3 {
		wrapper := el.Children[2]
		if wrapper.Tag != ber.Context(an.TagControls, true) {
			return nil, nil, ErrMessageFormat
		}
		for _, cel := range wrapper.Children {
			ctrl, ce, fe := c.decodeControl(cel)
			if fe != nil {
				return nil, nil, fe
			}
			scoped = multierr.Append(scoped, ce)
			msg.Controls = append(msg.Controls, ctrl)
		}
	}
	return msg, scoped, nil
}

func (c *Codec) decodeOp(el *ber.Element) (op Operation, scoped error, e error) {
	if el.Tag.Class != ber.ClassApplication {
		return nil, nil, ErrOpTag
	}
	switch el.Tag.Number {
	case an.OpBindRequest:
		op, e = decodeBindRequest(el)
	case an.OpBindResponse:
		op, e = decodeBindResponse(el)
	case an.OpUnbindRequest:
		if el.Tag.Constructed || len(el.Value) != 0 {
			return nil, nil, ErrMessageFormat
		}
		op = UnbindRequest{}
	case an.OpDelRequest:
		if el.Tag.Constructed {
			return nil, nil, ErrMessageFormat
		}
		op = &DelRequest{DN: el.String()}
	case an.OpDelResponse:
		op, e = decodeResultOp(el, func(res Result) Operation { return &DelResponse{Result: res} })
	case an.OpAbandonRequest:
		if el.Tag.Constructed {
			return nil, nil, ErrMessageFormat
		}
		var id int32
		if id, e = ber.ParseInt32(el.Value); e == nil {
			op = &AbandonRequest{MessageID: id}
		}
	case an.OpCompareRequest:
		op, e = decodeCompareRequest(el)
	case an.OpCompareResponse:
		op, e = decodeResultOp(el, func(res Result) Operation { return &CompareResponse{Result: res} })
	case an.OpSearchResultDone:
		op, e = decodeResultOp(el, func(res Result) Operation { return &SearchResultDone{Result: res} })
	case an.OpExtendedRequest:
		return c.decodeExtendedRequest(el)
	case an.OpExtendedResponse:
		return c.decodeExtendedResponse(el)
	default:
		return nil, nil, fmt.Errorf("%w: %d", ErrOpTag, el.Tag.Number)
	}
	return op, nil, e
}

func decodeBindRequest(el *ber.Element) (*BindRequest, error) {
	if !el.Tag.Constructed || len(el.Children) != 3 {
		return nil, ErrMessageFormat
	}
	if el.Children[0].Tag != ber.Integer || el.Children[1].Tag != ber.OctetString {
		return nil, ErrMessageFormat
	}
	version, e := ber.ParseInt32(el.Children[0].Value)
	if e != nil {
		return nil, e
	}

	req := &BindRequest{
		Version: int(version),
		Name:    el.Children[1].String(),
	}
	auth := el.Children[2]
	switch auth.Tag {
	case ber.Context(an.TagSimpleAuth, false):
		req.Simple = true
		req.Credentials = nonEmpty(auth.Value)
	case ber.Context(an.TagSaslAuth, true):
		if len(auth.Children) < 1 || len(auth.Children) > 2 {
			return nil, ErrMessageFormat
		}
		req.Mechanism = internString(auth.Children[0].Value)
		if len(auth.Children) == 2 {
			req.Credentials = nonEmpty(auth.Children[1].Value)
		}
	default:
		return nil, ErrMessageFormat
	}
	return req, nil
}

func decodeBindResponse(el *ber.Element) (*BindResponse, error) {
	if !el.Tag.Constructed {
		return nil, ErrMessageFormat
	}
	res, consumed, e := decodeResult(el.Children)
	if e != nil {
		return nil, e
	}
	resp := &BindResponse{Result: res}
	if consumed < len(el.Children) {
		creds := el.Children[consumed]
		if creds.Tag != ber.Context(an.TagServerSaslCreds, false) || consumed+1 != len(el.Children) {
			return nil, ErrMessageFormat
		}
		resp.ServerSaslCreds = nonEmpty(creds.Value)
	}
	return resp, nil
}

func decodeCompareRequest(el *ber.Element) (*CompareRequest, error) {
	if !el.Tag.Constructed || len(el.Children) != 2 {
		return nil, ErrMessageFormat
	}
	entry, ava := el.Children[0], el.Children[1]
	if entry.Tag != ber.OctetString || ava.Tag != ber.Sequence || len(ava.Children) != 2 {
		return nil, ErrMessageFormat
	}
	return &CompareRequest{
		Entry:     entry.String(),
		Attribute: internString(ava.Children[0].Value),
		Value:     ava.Children[1].Value,
	}, nil
}

func decodeResultOp(el *ber.Element, wrap func(Result) Operation) (Operation, error) {
	if !el.Tag.Constructed {
		return nil, ErrMessageFormat
	}
	res, consumed, e := decodeResult(el.Children)
	if e != nil {
		return nil, e
	}
	if consumed != len(el.Children) {
		return nil, ErrMessageFormat
	}
	return wrap(res), nil
}

// decodeResult reads the LDAPResult components from the front of children,
// returning how many were consumed.
func decodeResult(children []*ber.Element) (res Result, consumed int, e error) {
	if len(children) < 3 {
		return Result{}, 0, ErrMessageFormat
	}
	if children[0].Tag != ber.Enumerated ||
		children[1].Tag != ber.OctetString ||
		children[2].Tag != ber.OctetString {
		return Result{}, 0, ErrMessageFormat
	}
	code, e := ber.ParseInt32(children[0].Value)
	if e != nil {
		return Result{}, 0, e
	}
	res = Result{
		Code:       ResultCode(code),
		MatchedDN:  children[1].String(),
		Diagnostic: children[2].String(),
	}
	consumed = 3
	if consumed < len(children) && children[consumed].Tag == ber.Context(an.TagReferral, true) {
		for _, url := range children[consumed].Children {
			if url.Tag != ber.OctetString {
				return Result{}, 0, ErrMessageFormat
			}
			res.Referral = append(res.Referral, url.String())
		}
		consumed++
	}
	return res, consumed, nil
}

func (c *Codec) decodeControl(el *ber.Element) (ctrl Control, scoped error, e error) {
	if el.Tag != ber.Sequence || len(el.Children) == 0 {
		return Control{}, nil, ErrControlFormat
	}
	if el.Children[0].Tag != ber.OctetString {
		return Control{}, nil, ErrControlFormat
	}
	ctrl.OID = internString(el.Children[0].Value)

	idx := 1
	if idx < len(el.Children) && el.Children[idx].Tag == ber.Boolean {
		critical, e := el.Children[idx].Bool()
		if e != nil {
			return Control{}, nil, ErrControlFormat
		}
		ctrl.Critical = critical
		idx++
	}
	var value []byte
	hasValue := false
	if idx < len(el.Children) && el.Children[idx].Tag == ber.OctetString {
		value = el.Children[idx].Value
		hasValue = true
		idx++
	}
	if idx != len(el.Children) {
		return Control{}, nil, ErrControlFormat
	}

	f, ok := c.reg.Control(ctrl.OID)
	if !ok {
		if hasValue {
			ctrl.Value = OpaqueControlValue{OID: ctrl.OID, Bytes: value}
		}
		return ctrl, nil, nil
	}
	v, fe := f.NewValue(value)
	if fe != nil {
		logger.Debug("control payload rejected, degrading to opaque",
			zap.String("oid", ctrl.OID), zap.Error(fe))
		ctrl.Value = OpaqueControlValue{OID: ctrl.OID, Bytes: value}
		return ctrl, fmt.Errorf("control %s: %w", ctrl.OID, fe), nil
	}
	ctrl.Value = v
	return ctrl, nil, nil
}

func (c *Codec) decodeExtendedRequest(el *ber.Element) (op Operation, scoped error, e error) {
	if !el.Tag.Constructed || len(el.Children) < 1 || len(el.Children) > 2 {
		return nil, nil, ErrMessageFormat
	}
	if el.Children[0].Tag != ber.Context(an.TagExtendedRequestName, false) {
		return nil, nil, ErrMessageFormat
	}
	req := &ExtendedRequest{Name: internString(el.Children[0].Value)}

	var value []byte
	hasValue := false
	if len(el.Children) == 2 {
		if el.Children[1].Tag != ber.Context(an.TagExtendedRequestValue, false) {
			return nil, nil, ErrMessageFormat
		}
		value = el.Children[1].Value
		hasValue = true
	}

	req.Value, scoped = c.extensionValue(req.Name, value, hasValue, false)
	return req, scoped, nil
}

func (c *Codec) decodeExtendedResponse(el *ber.Element) (op Operation, scoped error, e error) {
	if !el.Tag.Constructed {
		return nil, nil, ErrMessageFormat
	}
	res, consumed, e := decodeResult(el.Children)
	if e != nil {
		return nil, nil, e
	}
	resp := &ExtendedResponse{Result: res}

	if consumed < len(el.Children) && el.Children[consumed].Tag == ber.Context(an.TagExtendedResponseName, false) {
		resp.Name = internString(el.Children[consumed].Value)
		consumed++
	}
	var value []byte
	hasValue := false
	if consumed < len(el.Children) && el.Children[consumed].Tag == ber.Context(an.TagExtendedResponseValue, false) {
		value = el.Children[consumed].Value
		hasValue = true
		consumed++
	}
	if consumed != len(el.Children) {
		return nil, nil, ErrMessageFormat
	}

	if resp.Name != "" {
		resp.Value, scoped = c.extensionValue(resp.Name, value, hasValue, true)
	} else if hasValue {
		resp.Value = OpaqueExtendedValue{Bytes: value}
	}
	return resp, scoped, nil
}

// extensionValue dispatches an extended operation payload through the
// registry. Unknown OIDs degrade to an opaque value; a factory failure is
// scoped to this one operation.
func (c *Codec) extensionValue(oid string, value []byte, hasValue, response bool) (ExtendedValue, error) {
	f, ok := c.reg.ExtOp(oid)
	if !ok {
		if !hasValue {
			return nil, nil
		}
		return OpaqueExtendedValue{OID: oid, Bytes: value}, nil
	}

	var v ExtendedValue
	var e error
	if response {
		v, e = f.NewResponse(value)
	} else {
		v, e = f.NewRequest(value)
	}
	if e != nil {
		logger.Debug("extended operation payload rejected, degrading to opaque",
			zap.String("oid", oid), zap.Bool("response", response), zap.Error(e))
		var opaque ExtendedValue
		if hasValue {
			opaque = OpaqueExtendedValue{OID: oid, Bytes: value}
		}
		return opaque, fmt.Errorf("extended operation %s: %w", oid, e)
	}
	return v, nil
}
