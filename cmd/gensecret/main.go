// Command gensecret prints random hex secret suitable for SECRET_KEY
package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
)

const SecretKeyBytesLen = 32

func main() {
	if err := run(os.Stdout, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error while generating secret key: %v\n", err)
		os.Exit(1)
	}
}

func run(w io.Writer, args []string) error {
	fs := pflag.NewFlagSet("gensecret", pflag.ContinueOnError)
	size := fs.IntP("bytes", "n", SecretKeyBytesLen, "Secret length in bytes")
	asEnv := fs.Bool("env", false, "Print as SECRET_KEY=... line for .env file")

	if err := fs.Parse(args); err != nil {
		return err
	}

	secret, err := generate(*size)
	if err != nil {
		return err
	}

	if *asEnv {
		_, err = fmt.Fprintf(w, "SECRET_KEY=%s\n", secret)
		return err
	}
	_, err = fmt.Fprintln(w, secret)
	return err
}

func generate(size int) (string, error) {
	if size < 16 {
		return "", fmt.Errorf("secret must be at least 16 bytes, got %d", size)
	}

	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return hex.EncodeToString(b), nil
}
