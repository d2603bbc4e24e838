package extops

import (
	"github.com/ldapwire/ldapwire/ber"
	"github.com/ldapwire/ldapwire/ldap"
	"github.com/ldapwire/ldapwire/ldap/an"
)

// delay is transferred with a context-specific tag inside the graceful
// disconnect value.
const tagGracefulDelay = 1

// GracefulDisconnect announces that the server is shutting down: how long
// it stays offline, the delay before disconnection, and the LDAP URLs of
// replicas that keep serving the disconnected contexts. It is server
// initiated and has no request counterpart.
type GracefulDisconnect struct {
	TimeOffline        int32 // minutes
	Delay              int32 // seconds
	ReplicatedContexts []string
}

// ExtensionOID implements ldap.ExtendedValue.
func (GracefulDisconnect) ExtensionOID() string {
	return an.OIDGracefulDisconnect
}

// GracefulDisconnectFactory is the ldap.ExtOpFactory for graceful
// disconnect notices.
type GracefulDisconnectFactory struct{}

// OID implements ldap.ExtOpFactory.
func (GracefulDisconnectFactory) OID() string {
	return an.OIDGracefulDisconnect
}

// NewRequest implements ldap.ExtOpFactory. There is no request associated
// with a graceful disconnect; a requestValue is rejected.
func (GracefulDisconnectFactory) NewRequest(value []byte) (ldap.ExtendedValue, error) {
	if len(value) != 0 {
		return nil, ErrNoRequestSide
	}
	return nil, nil
}

// NewResponse implements ldap.ExtOpFactory.
func (GracefulDisconnectFactory) NewResponse(value []byte) (ldap.ExtendedValue, error) {
	if len(value) == 0 {
		return GracefulDisconnect{}, nil
	}
	el, rest, e := ber.Parse(value)
	if e != nil {
		return nil, e
	}
	if len(rest) != 0 {
		return nil, ber.ErrTail
	}
	if el.Tag != ber.Sequence {
		return nil, ErrGracefulFormat
	}

	var gd GracefulDisconnect
	idx := 0
	if idx < len(el.Children) && el.Children[idx].Tag == ber.Integer {
		if gd.TimeOffline, e = ber.ParseInt32(el.Children[idx].Value); e != nil {
			return nil, e
		}
		idx++
	}
	if idx < len(el.Children) && el.Children[idx].Tag == ber.Context(tagGracefulDelay, false) {
		if gd.Delay, e = ber.ParseInt32(el.Children[idx].Value); e != nil {
			return nil, e
		}
		idx++
	}
	if idx < len(el.Children) && el.Children[idx].Tag == ber.Sequence {
		for _, url := range el.Children[idx].Children {
			if url.Tag != ber.OctetString {
				return nil, ErrGracefulFormat
			}
			gd.ReplicatedContexts = append(gd.ReplicatedContexts, url.String())
		}
		idx++
	}
	if idx != len(el.Children) {
		return nil, ErrGracefulFormat
	}
	return gd, nil
}

// EncodeValue implements ldap.ExtOpFactory. Absent components encode to
// nothing; an all-default value encodes to an empty SEQUENCE.
func (GracefulDisconnectFactory) EncodeValue(v ldap.ExtendedValue) ([]byte, error) {
	gd, ok := v.(GracefulDisconnect)
	if !ok {
		return nil, ErrValueType
	}

	var children []*ber.Element
	if gd.TimeOffline != 0 {
		children = append(children, ber.NewPrimitive(ber.Integer, ber.AppendInt(nil, int64(gd.TimeOffline))))
	}
	if gd.Delay != 0 {
		children = append(children, ber.NewPrimitive(ber.Context(tagGracefulDelay, false), ber.AppendInt(nil, int64(gd.Delay))))
	}
	if len(gd.ReplicatedContexts) > 0 {
		// the URL list is folded iteratively; its size is peer controlled
		urls := make([]*ber.Element, 0, len(gd.ReplicatedContexts))
		for _, url := range gd.ReplicatedContexts {
			urls = append(urls, ber.NewPrimitive(ber.OctetString, []byte(url)))
		}
		children = append(children, ber.NewConstructed(ber.Sequence, urls...))
	}
	return ber.NewConstructed(ber.Sequence, children...).Bytes(), nil
}
