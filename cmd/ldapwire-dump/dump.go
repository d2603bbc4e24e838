package main

import (
	"fmt"
	"strings"

	"github.com/ldapwire/ldapwire/ber"
	"github.com/ldapwire/ldapwire/ldap"
)

func tagString(tag ber.Tag) string {
	var class string
	switch tag.Class {
	case ber.ClassUniversal:
		class = "UNIV"
	case ber.ClassApplication:
		class = "APPL"
	case ber.ClassContext:
		class = "CTX"
	case ber.ClassPrivate:
		class = "PRIV"
	}
	form := "prim"
	if tag.Constructed {
		form = "cons"
	}
	return fmt.Sprintf("%s %d %s", class, tag.Number, form)
}

func dumpElement(el *ber.Element, depth int) {
	indent := strings.Repeat("  ", depth)
	if el.Tag.Constructed {
		fmt.Printf("%s[%s] len=%d\n", indent, tagString(el.Tag), el.ContentLength())
		for _, child := range el.Children {
			dumpElement(child, depth+1)
		}
		return
	}
	fmt.Printf("%s[%s] len=%d % X\n", indent, tagString(el.Tag), len(el.Value), el.Value)
}

func describeOp(op ldap.Operation) string {
	switch op := op.(type) {
	case *ldap.BindRequest:
		method := "simple"
		if !op.Simple {
			method = "sasl/" + op.Mechanism
		}
		return fmt.Sprintf("BindRequest v%d name=%q %s", op.Version, op.Name, method)
	case *ldap.BindResponse:
		return "BindResponse " + describeResult(op.Result)
	case ldap.UnbindRequest, *ldap.UnbindRequest:
		return "UnbindRequest"
	case *ldap.DelRequest:
		return fmt.Sprintf("DelRequest dn=%q", op.DN)
	case *ldap.DelResponse:
		return "DelResponse " + describeResult(op.Result)
	case *ldap.AbandonRequest:
		return fmt.Sprintf("AbandonRequest messageID=%d", op.MessageID)
	case *ldap.CompareRequest:
		return fmt.Sprintf("CompareRequest entry=%q %s=%q", op.Entry, op.Attribute, op.Value)
	case *ldap.CompareResponse:
		return "CompareResponse " + describeResult(op.Result)
	case *ldap.SearchResultDone:
		return "SearchResultDone " + describeResult(op.Result)
	case *ldap.ExtendedRequest:
		return fmt.Sprintf("ExtendedRequest %s %s", op.Name, describeValue(op.Value))
	case *ldap.ExtendedResponse:
		return fmt.Sprintf("ExtendedResponse %s %s %s", op.Name, describeResult(op.Result), describeValue(op.Value))
	default:
		return fmt.Sprintf("%T", op)
	}
}

func describeResult(res ldap.Result) string {
	s := fmt.Sprintf("code=%d", res.Code)
	if res.MatchedDN != "" {
		s += fmt.Sprintf(" matched=%q", res.MatchedDN)
	}
	if res.Diagnostic != "" {
		s += fmt.Sprintf(" diagnostic=%q", res.Diagnostic)
	}
	if len(res.Referral) > 0 {
		s += fmt.Sprintf(" referral=%v", res.Referral)
	}
	return s
}

func describeValue(v ldap.ExtendedValue) string {
	switch v := v.(type) {
	case nil:
		return "(no value)"
	case ldap.OpaqueExtendedValue:
		return fmt.Sprintf("(opaque %d octets)", len(v.Bytes))
	default:
		return fmt.Sprintf("%+v", v)
	}
}

func describeControl(ctrl ldap.Control) string {
	switch v := ctrl.Value.(type) {
	case nil:
		return "(no value)"
	case ldap.OpaqueControlValue:
		return fmt.Sprintf("(opaque %d octets)", len(v.Bytes))
	default:
		return fmt.Sprintf("%+v", v)
	}
}
