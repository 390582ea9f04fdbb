package output

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/zfogg/swipefeed/pkg/config"
	"github.com/zfogg/swipefeed/pkg/feed"
)

func capture(t *testing.T, format string) *bytes.Buffer {
	t.Helper()
	if err := config.Init(filepath.Join(t.TempDir(), "config.toml")); err != nil {
		t.Fatalf("config init: %v", err)
	}
	config.Set("output.format", format)

	var buf bytes.Buffer
	oldOut, oldNoColor := Out, color.NoColor
	Out, color.NoColor = &buf, true
	t.Cleanup(func() {
		Out, color.NoColor = oldOut, oldNoColor
		config.Set("output.format", "text")
	})
	return &buf
}

var sample = []feed.VideoItem{
	{ID: "v1", Title: "Skate tricks", Owner: "ana", IsLiked: true, Stats: feed.Stats{Likes: 12, Comments: 3}},
	{ID: "v2", Title: "Street food", Owner: "bo", Stats: feed.Stats{Shares: 4}},
}

func TestValidateOutputFormat(t *testing.T) {
	tests := []struct {
		format  string
		isValid bool
	}{
		{"json", true},
		{"text", true},
		{"table", true},
		{"invalid", false},
	}

	for _, tt := range tests {
		if result := ValidateOutputFormat(tt.format); result != tt.isValid {
			t.Errorf("ValidateOutputFormat(%s): got %v, want %v", tt.format, result, tt.isValid)
		}
	}
}

func TestGetOutputFormat_UnknownFallsBackToText(t *testing.T) {
	capture(t, "yaml")
	if GetOutputFormat() != FormatText {
		t.Errorf("expected text fallback, got %s", GetOutputFormat())
	}
}

func TestPrintVideos_Text(t *testing.T) {
	buf := capture(t, "text")

	if err := PrintVideos(2, sample, true); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{"Page 2 (2 videos)", "v1", "Skate tricks", "@ana", "12 likes", "--page 3"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestPrintVideos_JSON(t *testing.T) {
	buf := capture(t, "json")

	if err := PrintVideos(1, sample, false); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	if !strings.Contains(out, `"has_more": false`) || !strings.Contains(out, `"id": "v2"`) {
		t.Errorf("unexpected JSON output:\n%s", out)
	}
}

func TestPrintVideos_Table(t *testing.T) {
	buf := capture(t, "table")

	if err := PrintVideos(1, sample, false); err != nil {
		t.Fatal(err)
	}

	// top border, header, separator, two rows, bottom border
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 6 {
		t.Fatalf("expected header plus two rows, got %d lines:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[1], "│ ID") || !strings.HasPrefix(lines[3], "│ v1") {
		t.Errorf("unexpected table:\n%s", buf.String())
	}
}

func TestPrintVideo_Text(t *testing.T) {
	buf := capture(t, "text")

	if err := PrintVideo(sample[0]); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "v1:\n") || !strings.Contains(out, "likes: 12") {
		t.Errorf("unexpected record output:\n%s", out)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("got %q", got)
	}
	if got := truncate("abcdefghij", 5); got != "abcd…" {
		t.Errorf("got %q", got)
	}
}
