package ldap

// ResultCode is an LDAP result code. Values are declared in package an.
type ResultCode int32

// Result is the LDAPResult component shared by response operations.
type Result struct {
	Code       ResultCode
	MatchedDN  string
	Diagnostic string
	Referral   []string
}

// CompareResponse reports the outcome of a CompareRequest.
type CompareResponse struct {
	Result
}

func (*CompareResponse) isOperation() {}

// DelResponse reports the outcome of a DelRequest.
type DelResponse struct {
	Result
}

func (*DelResponse) isOperation() {}

// SearchResultDone terminates a search response.
type SearchResultDone struct {
	Result
}

func (*SearchResultDone) isOperation() {}
