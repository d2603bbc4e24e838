package ldap

import "bytes"

// BindRequest authenticates a connection, by simple password or by a SASL
// mechanism.
type BindRequest struct {
	Version int
	Name    string

	// Simple selects the simple authentication choice; otherwise Mechanism
	// names the SASL mechanism.
	Simple      bool
	Credentials []byte
	Mechanism   string
}

func (*BindRequest) isOperation() {}

// Equal compares two bind requests, short-circuiting on a credentials hash
// before comparing credential bytes. The hash is not collision resistant;
// it only serves to make the common not-equal case cheap.
func (req *BindRequest) Equal(other *BindRequest) bool {
	if req == other {
		return true
	}
	if other == nil ||
		req.Version != other.Version ||
		req.Name != other.Name ||
		req.Simple != other.Simple ||
		req.Mechanism != other.Mechanism {
		return false
	}
	if credentialsHash(req.Credentials) != credentialsHash(other.Credentials) {
		return false
	}
	return bytes.Equal(req.Credentials, other.Credentials)
}

func credentialsHash(credentials []byte) (h int32) {
	for _, octet := range credentials {
		h = h*31 + int32(octet)
	}
	return h
}

// BindResponse answers a BindRequest.
type BindResponse struct {
	Result
	ServerSaslCreds []byte
}

func (*BindResponse) isOperation() {}
