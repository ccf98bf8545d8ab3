package media_test

import (
	"os"
	"path/filepath"
	"testing"

	"lutforge/internal/media"
)

func TestNewImageInfoDefaults(t *testing.T) {
	info, err := media.NewImageInfo("/plates/sh010/plate.1001.exr", media.ImageInfo{})
	if err != nil {
		t.Fatalf("NewImageInfo returned error: %v", err)
	}
	if info.Width != 1920 || info.Height != 1080 || info.Channels != 3 {
		t.Fatalf("unexpected frame defaults: %#v", info)
	}
	if info.DisplayWidth != 1920 || info.DisplayHeight != 1080 {
		t.Fatalf("display window must default to the data window: %#v", info)
	}
	if info.FPS != 24.0 || info.PAR != 1.0 || info.Timecode != "00:00:00:00" {
		t.Fatalf("unexpected timing defaults: %#v", info)
	}
}

func TestNewImageInfoKeepsSuppliedValues(t *testing.T) {
	info, err := media.NewImageInfo("plate.1001.exr", media.ImageInfo{Width: 4448, Height: 3096, FPS: 23.976})
	if err != nil {
		t.Fatalf("NewImageInfo returned error: %v", err)
	}
	if info.Width != 4448 || info.Height != 3096 || info.FPS != 23.976 {
		t.Fatalf("supplied values must survive: %#v", info)
	}
	if info.DisplayWidth != 4448 || info.DisplayHeight != 3096 {
		t.Fatalf("display window must follow supplied size: %#v", info)
	}
}

func TestNewImageInfoRequiresPath(t *testing.T) {
	if _, err := media.NewImageInfo("", media.ImageInfo{}); err == nil {
		t.Fatal("empty path must be rejected")
	}
}

func TestFrameNumber(t *testing.T) {
	cases := []struct {
		name    string
		want    int
		wantErr bool
	}{
		{"plate.1001.exr", 1001, false},
		{"plate.0042.exr", 42, false},
		{"plate.exr", 0, true},
		{"plate.01.02.exr", 0, true},
	}
	for _, tc := range cases {
		info := media.ImageInfo{Path: tc.name}
		got, err := info.FrameNumber()
		if tc.wantErr {
			if err == nil {
				t.Fatalf("%s: expected error", tc.name)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if got != tc.want {
			t.Fatalf("%s: got %d want %d", tc.name, got, tc.want)
		}
	}
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"plate.1001.exr", "plate.1002.exr", "plate.1004.exr",
		"ref.0001.exr",
		"notes.txt", "single.exr",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	sequences, err := media.Scan(dir)
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	if len(sequences) != 2 {
		t.Fatalf("expected 2 sequences, got %d", len(sequences))
	}

	plate := sequences[0]
	if plate.StartFrame() != 1001 || plate.EndFrame() != 1004 {
		t.Fatalf("unexpected plate range %d-%d", plate.StartFrame(), plate.EndFrame())
	}
	if !plate.FramesMissing() {
		t.Fatal("gap at 1003 must be reported")
	}
	if got := plate.FormatString(); got != "plate.%04d.exr" {
		t.Fatalf("format string: %q", got)
	}
	if got := plate.HashString(); got != "plate.1001-1004#.exr" {
		t.Fatalf("hash string: %q", got)
	}

	ref := sequences[1]
	if ref.StartFrame() != 1 || ref.Padding() != 4 {
		t.Fatalf("unexpected ref sequence: start %d padding %d", ref.StartFrame(), ref.Padding())
	}
	if ref.FramesMissing() {
		t.Fatal("single-frame sequence has no gaps")
	}
}

func TestScanMissingDirectory(t *testing.T) {
	if _, err := media.Scan(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
