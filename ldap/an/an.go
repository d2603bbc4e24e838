// Package an declares LDAP protocol assigned numbers.
package an

// Application tag numbers of protocol operations.
const (
	OpBindRequest           = 0
	OpBindResponse          = 1
	OpUnbindRequest         = 2
	OpSearchRequest         = 3
	OpSearchResultEntry     = 4
	OpSearchResultDone      = 5
	OpModifyRequest         = 6
	OpModifyResponse        = 7
	OpAddRequest            = 8
	OpAddResponse           = 9
	OpDelRequest            = 10
	OpDelResponse           = 11
	OpModifyDNRequest       = 12
	OpModifyDNResponse      = 13
	OpCompareRequest        = 14
	OpCompareResponse       = 15
	OpAbandonRequest        = 16
	OpSearchResultReference = 19
	OpExtendedRequest       = 23
	OpExtendedResponse      = 24
	OpIntermediateResponse  = 25
)

// Context-specific tag numbers inside protocol operations.
const (
	TagControls = 0 // controls on LDAPMessage

	TagSimpleAuth      = 0 // BindRequest authentication choice
	TagSaslAuth        = 3
	TagServerSaslCreds = 7 // BindResponse

	TagReferral = 3 // LDAPResult

	TagExtendedRequestName   = 0
	TagExtendedRequestValue  = 1
	TagExtendedResponseName  = 10
	TagExtendedResponseValue = 11
)
