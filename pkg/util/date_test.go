package util

import (
	"strconv"
	"testing"
	"time"
)

func TestParseTimeRFC3339(t *testing.T) {
	s := "2024-10-10T10:10:10Z"
	got, ok := ParseTime(s)
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.UTC().Format(time.RFC3339) != s {
		t.Fatalf("unexpected time %v", got)
	}
}

func TestParseTimeUnix(t *testing.T) {
	ts := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC).Unix()
	got, ok := ParseTime(strconv.FormatInt(ts, 10))
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.Unix() != ts {
		t.Fatalf("unexpected unix %v", got.Unix())
	}
}

func TestParseTimeDefault(t *testing.T) {
	def := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC)
	got := ParseTimeDefault("", def)
	if !got.Equal(def) {
		t.Fatalf("expected default")
	}
}

func TestAlignToInterval(t *testing.T) {
	ts := time.Date(2024, 10, 10, 14, 38, 27, 0, time.UTC)
	if got := AlignToInterval(ts, "5m"); got.Minute() != 35 || got.Second() != 0 {
		t.Fatalf("5m alignment wrong: %v", got)
	}
	if got := AlignToInterval(ts, "1h"); got.Hour() != 14 || got.Minute() != 0 {
		t.Fatalf("1h alignment wrong: %v", got)
	}
	if got := AlignToInterval(ts, "1d"); got.Hour() != 0 {
		t.Fatalf("1d alignment wrong: %v", got)
	}
}
