package am

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, contents string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "mbox")
	require.NoError(t, os.WriteFile(p, []byte(contents), 0o644))
	return p
}

func TestDetectFormatStdinAndDash(t *testing.T) {
	f, err := DetectFormat("")
	require.NoError(t, err)
	require.Equal(t, FormatMbox, f)

	f, err = DetectFormat("-")
	require.NoError(t, err)
	require.Equal(t, FormatMbox, f)
}

func TestDetectFormatDirectory(t *testing.T) {
	f, err := DetectFormat(t.TempDir())
	require.NoError(t, err)
	require.Equal(t, FormatMbox, f)
}

func TestDetectFormatMboxEnvelope(t *testing.T) {
	p := writeTemp(t, "From abcdef Mon Sep 17 00:00:00 2001\nFrom: a@b.com\nSubject: x\n\nbody\n")
	f, err := DetectFormat(p)
	require.NoError(t, err)
	require.Equal(t, FormatMbox, f)
}

func TestDetectFormatBareHeaders(t *testing.T) {
	p := writeTemp(t, "From: a@b.com\nSubject: x\n\nbody\n")
	f, err := DetectFormat(p)
	require.NoError(t, err)
	require.Equal(t, FormatMbox, f)
}

func TestDetectFormatRejectsHeaderFollowedByOrdinaryLine(t *testing.T) {
	p := writeTemp(t, "Subject: x\nan ordinary body line with no colon\n\nbody\n")
	f, err := DetectFormat(p)
	require.NoError(t, err)
	require.Equal(t, FormatUnrecognized, f)
}

func TestDetectFormatUnrecognized(t *testing.T) {
	p := writeTemp(t, "not a mail message at all\njust some text\n")
	f, err := DetectFormat(p)
	require.NoError(t, err)
	require.Equal(t, FormatUnrecognized, f)
}
