package main

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
)

const (
	defaultSecretBytesLen = 32
	minSecretBytesLen     = 16

	encodingHex    = "hex"
	encodingBase64 = "base64"
)

func main() {
	if err := run(os.Stdout, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error while generating secret key: %v\n", err)
		os.Exit(1)
	}
}

// Print random secret suitable for SECRET_KEY
func run(out io.Writer, args []string) error {
	fs := pflag.NewFlagSet("gensecret", pflag.ContinueOnError)
	size := fs.IntP("bytes", "b", defaultSecretBytesLen, "Number of random bytes")
	encoding := fs.StringP("encoding", "e", encodingHex, "Output encoding (hex, base64)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *size < minSecretBytesLen {
		return fmt.Errorf("secret must be at least %d bytes, got %d", minSecretBytesLen, *size)
	}

	var encode func([]byte) string
	switch *encoding {
	case encodingHex:
		encode = hex.EncodeToString
	case encodingBase64:
		encode = base64.StdEncoding.EncodeToString
	default:
		return fmt.Errorf("unknown encoding %q", *encoding)
	}

	b := make([]byte, *size)
	if _, err := rand.Read(b); err != nil {
		return err
	}

	_, err := fmt.Fprintln(out, encode(b))
	return err
}
