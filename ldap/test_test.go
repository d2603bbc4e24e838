package ldap_test

import (
	"github.com/ldapwire/ldapwire/core/testenv"
)

var (
	makeAR       = testenv.MakeAR
	bytesFromHex = testenv.BytesFromHex
)
