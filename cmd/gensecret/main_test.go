package main

import (
	"bytes"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_run(t *testing.T) {
	t.Run("default length", func(t *testing.T) {
		var out bytes.Buffer

		err := run(&out, nil)

		require.NoError(t, err)
		b, err := hex.DecodeString(strings.TrimSpace(out.String()))
		require.NoError(t, err, "secret should be hex")
		require.Len(t, b, SecretKeyBytesLen)
	})

	t.Run("env line", func(t *testing.T) {
		var out bytes.Buffer

		err := run(&out, []string{"--env", "-n", "16"})

		require.NoError(t, err)
		require.True(t, strings.HasPrefix(out.String(), "SECRET_KEY="))
		require.Len(t, strings.TrimSpace(out.String()), len("SECRET_KEY=")+32)
	})

	t.Run("too short", func(t *testing.T) {
		err := run(&bytes.Buffer{}, []string{"-n", "8"})

		require.Error(t, err)
	})

	t.Run("secrets differ", func(t *testing.T) {
		s1, err := generate(SecretKeyBytesLen)
		require.NoError(t, err)
		s2, err := generate(SecretKeyBytesLen)
		require.NoError(t, err)

		require.NotEqual(t, s1, s2)
	})
}
