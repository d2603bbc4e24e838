// Command ldapwire-dump decodes BER-encoded LDAP messages from a capture
// file or a hex string, printing the TLV structure and a per-message
// summary.
package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/ldapwire/ldapwire/ber"
	"github.com/ldapwire/ldapwire/core/version"
	"github.com/ldapwire/ldapwire/ldap"
	"github.com/ldapwire/ldapwire/ldap/controls"
	"github.com/ldapwire/ldapwire/ldap/extops"
)

var app = &cli.App{
	Version:   version.Get().String(),
	Usage:     "Decode BER-encoded LDAP messages.",
	ArgsUsage: "[filename]",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "hex",
			Usage: "decode `octets` written in hexadecimal instead of reading a file",
		},
		&cli.IntFlag{
			Name:  "chunk",
			Value: 64,
			Usage: "feed the decoder `size` bytes at a time",
		},
		&cli.BoolFlag{
			Name:  "tlv-only",
			Usage: "print the TLV structure without interpreting LDAP messages",
		},
		&cli.IntFlag{
			Name:  "max-size",
			Usage: "reject elements larger than `octets`",
		},
	},
	Action: func(c *cli.Context) error {
		input, e := readInput(c)
		if e != nil {
			return e
		}
		chunk := c.Int("chunk")
		if chunk <= 0 {
			return errors.New("chunk must be positive")
		}

		codec := ldap.NewCodec(ldap.CodecConfig{
			Limits: ber.Limits{MaxSize: c.Int("max-size")},
		})
		controls.Register(codec.Registry())
		extops.Register(codec.Registry())

		d := codec.NewDecoder()
		index := 0
		for len(input) > 0 {
			n := chunk
			if n > len(input) {
				n = len(input)
			}
			if _, e := d.Write(input[:n]); e != nil {
				return e
			}
			input = input[n:]

			for {
				el, e := d.Next()
				if e != nil {
					return e
				}
				if el == nil {
					break
				}
				dumpElement(el, 0)
				if !c.Bool("tlv-only") {
					printMessage(codec, el, index)
				}
				index++
			}
		}
		if d.Pending() {
			return errors.New("incomplete element at end of input")
		}
		return nil
	},
}

func readInput(c *cli.Context) ([]byte, error) {
	if s := c.String("hex"); s != "" {
		s = strings.Map(func(ch rune) rune {
			if strings.ContainsRune("0123456789abcdefABCDEF", ch) {
				return ch
			}
			return -1
		}, s)
		return hex.DecodeString(s)
	}
	switch filename := c.Args().First(); filename {
	case "", "-":
		return io.ReadAll(os.Stdin)
	default:
		return os.ReadFile(filename)
	}
}

func printMessage(codec *ldap.Codec, el *ber.Element, index int) {
	msg, scoped, e := codec.DecodeMessage(el)
	if e != nil {
		fmt.Printf("#%d not an LDAP message: %v\n", index, e)
		return
	}
	if scoped != nil {
		fmt.Printf("#%d degraded payloads: %v\n", index, scoped)
	}
	fmt.Printf("#%d messageID=%d %s\n", index, msg.ID, describeOp(msg.Op))
	for _, ctrl := range msg.Controls {
		fmt.Printf("    control %s critical=%v %s\n", ctrl.OID, ctrl.Critical, describeControl(ctrl))
	}
}

func main() {
	if e := app.Run(os.Args); e != nil {
		log.Fatal(e)
	}
}
