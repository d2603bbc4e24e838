// Package ber implements ASN.1 Basic Encoding Rules (BER) as used on the
// LDAP wire: tag-length-value elements, minimal-form length octets, and the
// primitive value types of the protocol (INTEGER, OCTET STRING, BOOLEAN,
// OBJECT IDENTIFIER, ENUMERATED).
package ber
