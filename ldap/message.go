package ldap

// Message is one LDAP PDU: a message ID, a protocol operation, and optional
// controls. Message and the operation types carry no codec state; encoding
// caches live in per-pass decorators owned by the Codec.
type Message struct {
	ID       int32
	Op       Operation
	Controls []Control
}

// Operation is one LDAP protocol operation. The set of implementations is
// closed within this package.
type Operation interface {
	isOperation()
}

// UnbindRequest terminates a connection. It carries no content.
type UnbindRequest struct{}

func (UnbindRequest) isOperation() {}

// DelRequest removes an entry. The DN transfers directly as the content of
// the application tag.
type DelRequest struct {
	DN string
}

func (*DelRequest) isOperation() {}

// AbandonRequest asks the server to stop processing the identified message.
type AbandonRequest struct {
	MessageID int32
}

func (*AbandonRequest) isOperation() {}

// CompareRequest checks one attribute value assertion against an entry.
type CompareRequest struct {
	Entry     string
	Attribute string
	Value     []byte
}

func (*CompareRequest) isOperation() {}
