package effect_test

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"lutforge/internal/effect"
	"lutforge/internal/faults"
)

const lookDoc = `{
  "version": 1,
  "data": {
    "ocioLookWorkingSpace": "ACES - ACEScg",
    "ocioLookItems": [
      {
        "name": "BLD_Ext_D",
        "ext": "cube",
        "file": "/luts/BLD_Ext_D.cube",
        "input_colorspace": "Input - Sony - S-Log3",
        "output_colorspace": "Output - Rec.709"
      }
    ]
  }
}`

func TestLookFileLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "look.json")
	writeFile(t, path, lookDoc)

	look := effect.NewLookFile(path, effect.Options{})
	if err := look.Load(); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	product := look.Product()
	if product.WorkingSpace != "ACES - ACEScg" {
		t.Fatalf("unexpected working space %q", product.WorkingSpace)
	}
	if len(product.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(product.Items))
	}
	if got := product.Items[0].File; got != "/luts/BLD_Ext_D.cube" {
		t.Fatalf("explicit file must be kept: %q", got)
	}
	if transforms := product.OCIOTransforms(); len(transforms) != 3 {
		t.Fatalf("one item expands to 3 transforms, got %d", len(transforms))
	}
}

func TestLookFileMissingVersionDefaultsToOne(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "look.json")
	writeFile(t, path, `{"data": {"ocioLookWorkingSpace": "ACES - ACEScg", "ocioLookItems": []}}`)

	look := effect.NewLookFile(path, effect.Options{})
	if err := look.Load(); err != nil {
		t.Fatalf("missing version must default: %v", err)
	}
}

func TestLookFileRejectsUnknownVersion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "look.json")
	writeFile(t, path, `{"version": 2, "data": {}}`)

	look := effect.NewLookFile(path, effect.Options{})
	err := look.Load()
	if err == nil || !errors.Is(err, faults.ErrConfiguration) {
		t.Fatalf("expected configuration error for version 2, got %v", err)
	}
	if len(look.Product().Items) != 0 {
		t.Fatal("failed load must leave the product empty")
	}
}

func TestLookFileFillsFileFromTargetPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "look.json")
	writeFile(t, path, `{
  "version": 1,
  "data": {
    "ocioLookWorkingSpace": "ACES - ACEScg",
    "ocioLookItems": [
      {"name": "BLD_Ext_D", "ext": "cube", "input_colorspace": "in", "output_colorspace": "out"}
    ]
  }
}`)

	look := effect.NewLookFile(path, effect.Options{TargetDir: "/renders/sh010_v002.exr"})
	if err := look.Load(); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got := look.Product().Items[0].File; got != "sh010_v002.cube" {
		t.Fatalf("file must take the target stem plus the item extension, got %q", got)
	}
}

func TestLookFileFillsFileFromSiblings(t *testing.T) {
	dir := t.TempDir()
	lut := filepath.Join(dir, "BLD_Ext_D.cube")
	writeFile(t, lut, "# lut\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), "x\n")
	path := filepath.Join(dir, "look.json")
	writeFile(t, path, `{
  "version": 1,
  "data": {
    "ocioLookWorkingSpace": "ACES - ACEScg",
    "ocioLookItems": [
      {"name": "BLD_Ext_D", "ext": "cube", "input_colorspace": "in", "output_colorspace": "out"}
    ]
  }
}`)

	look := effect.NewLookFile(path, effect.Options{})
	if err := look.Load(); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got := look.Product().Items[0].File; got != filepath.ToSlash(lut) {
		t.Fatalf("file must come from the matching sibling, got %q", got)
	}
}

func TestLookFileOiiotoolArgs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "look.json")
	writeFile(t, path, lookDoc)

	look := effect.NewLookFile(path, effect.Options{})
	if err := look.Load(); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	want := []string{
		"--colorconvert", "ACES - ACEScg", "Input - Sony - S-Log3",
		"--ociofiletransform", "/luts/BLD_Ext_D.cube",
		"--colorconvert", "Output - Rec.709", "ACES - ACEScg",
	}
	if got := look.OiiotoolArgs(); !reflect.DeepEqual(got, want) {
		t.Fatalf("args: got %v want %v", got, want)
	}
}
