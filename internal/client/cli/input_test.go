package cli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	r := bufio.NewReader(strings.NewReader("  hello world  \n"))

	got, err := GetSimpleText(r, "Enter title", &out)
	require.NoError(t, err)
	require.Equal(t, "hello world", got)
	require.Contains(t, out.String(), "Enter title")
}

func TestGetSimpleTextReturnsPartialLineOnEOF(t *testing.T) {
	var out bytes.Buffer
	r := bufio.NewReader(strings.NewReader("no newline"))

	got, err := GetSimpleText(r, "Enter title", &out)
	require.NoError(t, err)
	require.Equal(t, "no newline", got)
}

func TestGetSimpleTextErrorOnEmptyEOF(t *testing.T) {
	var out bytes.Buffer
	r := bufio.NewReader(strings.NewReader(""))

	_, err := GetSimpleText(r, "Enter title", &out)
	require.Error(t, err)
}

func TestGetPassword(t *testing.T) {
	orig := readPassword
	defer func() { readPassword = orig }()
	readPassword = func(fd int) ([]byte, error) { return []byte("s3cret"), nil }

	var out bytes.Buffer
	got, err := GetPassword(&out)
	require.NoError(t, err)
	require.Equal(t, "s3cret", got)
	require.Contains(t, out.String(), "Enter password")
}

func TestGetMultiline(t *testing.T) {
	var out bytes.Buffer
	r := bufio.NewReader(strings.NewReader("first line\nsecond line\n\nignored\n"))

	got, err := GetMultiline(r, "Enter content", &out)
	require.NoError(t, err)
	require.Equal(t, "first line\nsecond line", got)
}

func TestGetMultilineEmpty(t *testing.T) {
	var out bytes.Buffer
	r := bufio.NewReader(strings.NewReader("\n"))

	got, err := GetMultiline(r, "Enter content", &out)
	require.NoError(t, err)
	require.Empty(t, got)
}
