package an

// Control and extended operation OIDs.
const (
	OIDCascade      = "1.3.6.1.4.1.18060.0.0.1"
	OIDPagedResults = "1.2.840.113556.1.4.319"
	OIDDirSync      = "1.2.840.113556.1.4.841"
	OIDManageDsaIT  = "2.16.840.1.113730.3.4.2"

	OIDCertGeneration        = "1.3.6.1.4.1.18060.0.1.8"
	OIDGracefulDisconnect    = "1.3.6.1.4.1.18060.0.1.5"
	OIDNoticeOfDisconnection = "1.3.6.1.4.1.1466.20036"
	OIDStartTLS              = "1.3.6.1.4.1.1466.20037"
)
