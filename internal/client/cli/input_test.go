package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGetSimpleText(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("hello world\n"))
	var out bytes.Buffer
	got, err := GetSimpleText(in, "Name?", &out)
	if err != nil || got != "hello world" {
		t.Fatalf("got %q, err=%v", got, err)
	}
}

func TestGetSimpleTextEOF(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("lastline"))
	var out bytes.Buffer
	got, err := GetSimpleText(in, "Name?", &out)
	if err != nil || got != "lastline" {
		t.Fatalf("got %q, err=%v", got, err)
	}
}

func TestGetMultiline_DoubleEnter(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("a\nb\n\n\n"))
	var out bytes.Buffer
	got, err := GetMultiline(in, "Enter text", &out)
	if err != nil {
		t.Fatal(err)
	}
	want := "a\nb"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestGetPassword_Error(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(int) ([]byte, error) {
		return nil, errors.New("boom")
	}
	var out bytes.Buffer
	_, err := GetPassword(&out)
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestGetDate(t *testing.T) {
	def := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	var out bytes.Buffer

	got, err := GetDate(bufio.NewReader(strings.NewReader("\n")), "Due", def, &out)
	require.NoError(t, err)
	require.True(t, got.Equal(def))
	require.Contains(t, out.String(), "[2025-01-31]")

	got, err = GetDate(bufio.NewReader(strings.NewReader("2025-02-28\n")), "Due", def, &out)
	require.NoError(t, err)
	require.Equal(t, time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC), got)

	_, err = GetDate(bufio.NewReader(strings.NewReader("tomorrow\n")), "Due", def, &out)
	require.Error(t, err)
}

func TestGetChoice(t *testing.T) {
	choices := []string{"none", "daily", "monthly"}
	var out bytes.Buffer

	got, err := GetChoice(bufio.NewReader(strings.NewReader("\n")), "Repeat", choices, "none", &out)
	require.NoError(t, err)
	require.Equal(t, "none", got)
	require.Contains(t, out.String(), "Repeat (none|daily|monthly) [none]")

	out.Reset()
	got, err = GetChoice(bufio.NewReader(strings.NewReader("hourly\nMonthly\n")), "Repeat", choices, "none", &out)
	require.NoError(t, err)
	require.Equal(t, "monthly", got)
	require.Contains(t, out.String(), `"hourly" is not one of`)

	_, err = GetChoice(bufio.NewReader(strings.NewReader("a\nb\nc\nd\n")), "Repeat", choices, "none", &out)
	require.Error(t, err)
}
