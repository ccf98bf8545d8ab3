package effect_test

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"lutforge/internal/effect"
	"lutforge/internal/faults"
	"lutforge/internal/operator"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

const effectDoc = `{
  "metadata": "ignored string value",
  "outro": {"class": "OCIOColorSpace", "subTrackIndex": 4, "node": {"in_colorspace": "ACES - ACEScg", "out_colorspace": "Output - Rec.709"}},
  "grade": {"class": "OCIOCDLTransform", "subTrackIndex": 1, "node": {"slope": [1.1, 1.0, 0.9], "saturation": 0.95}},
  "repo": {"class": "Transform", "subTrackIndex": 2, "node": {"scale": 1.075, "center": [2191.0, 1155.0]}},
  "unknown": {"class": "SoftGlow", "subTrackIndex": 0, "node": {"amount": 1.0}},
  "flip": {"class": "Mirror2", "subTrackIndex": 3, "node": {"flip": true}},
  "intro": {"class": "OCIOColorSpace", "subTrackIndex": 0, "node": {"in_colorspace": "Input - ARRI - V3 LogC", "out_colorspace": "ACES - ACEScg"}}
}`

func TestLoadPartitionsAndOrders(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shot_effect.json")
	writeFile(t, path, effectDoc)

	compiler := effect.NewCompiler(path, effect.Options{})
	if err := compiler.Load(); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	colorOps := compiler.ColorOperators()
	if len(colorOps) != 3 {
		t.Fatalf("expected 3 color operators, got %d", len(colorOps))
	}
	// subTrackIndex order: intro (0), grade (1), outro (4).
	if got := colorOps[0].(operator.ColorSpace).In; got != "Input - ARRI - V3 LogC" {
		t.Fatalf("first color op out of order: %q", got)
	}
	if _, ok := colorOps[1].(operator.CDL); !ok {
		t.Fatalf("second color op should be the grade, got %T", colorOps[1])
	}
	if got := colorOps[2].(operator.ColorSpace).Out; got != "Output - Rec.709" {
		t.Fatalf("last color op out of order: %q", got)
	}

	repoOps := compiler.RepositionOperators()
	if len(repoOps) != 2 {
		t.Fatalf("expected 2 reposition operators, got %d", len(repoOps))
	}
	if _, ok := repoOps[0].(operator.Transform); !ok {
		t.Fatalf("first repo op should be the transform, got %T", repoOps[0])
	}
	if _, ok := repoOps[1].(operator.Mirror); !ok {
		t.Fatalf("second repo op should be the mirror, got %T", repoOps[1])
	}
}

func TestLoadTieBreaksByDocumentOrder(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ties.json")
	writeFile(t, path, `{
  "b_first": {"class": "OCIOColorSpace", "subTrackIndex": 0, "node": {"in_colorspace": "one", "out_colorspace": "x"}},
  "a_second": {"class": "OCIOColorSpace", "subTrackIndex": 0, "node": {"in_colorspace": "two", "out_colorspace": "x"}}
}`)

	compiler := effect.NewCompiler(path, effect.Options{})
	if err := compiler.Load(); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	ops := compiler.ColorOperators()
	if len(ops) != 2 {
		t.Fatalf("expected 2 operators, got %d", len(ops))
	}
	if ops[0].(operator.ColorSpace).In != "one" || ops[1].(operator.ColorSpace).In != "two" {
		t.Fatalf("tie must keep document order: %#v", ops)
	}
}

func TestLoadMalformedJSONLeavesListsEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.json")
	writeFile(t, path, `{"grade": {"class": "OCIOCDLTransform",`)

	compiler := effect.NewCompiler(path, effect.Options{})
	err := compiler.Load()
	if err == nil || !errors.Is(err, faults.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if len(compiler.ColorOperators()) != 0 || len(compiler.RepositionOperators()) != 0 {
		t.Fatal("failed load must leave both lists empty")
	}
}

func TestLoadMissingFileIsFatal(t *testing.T) {
	compiler := effect.NewCompiler(filepath.Join(t.TempDir(), "absent.json"), effect.Options{})
	if err := compiler.Load(); err == nil {
		t.Fatal("expected error for missing effect document")
	}
}

func TestReloadIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shot_effect.json")
	writeFile(t, path, effectDoc)

	compiler := effect.NewCompiler(path, effect.Options{})
	if err := compiler.Load(); err != nil {
		t.Fatalf("first load: %v", err)
	}
	first := compiler.OiiotoolArgs()
	if err := compiler.Load(); err != nil {
		t.Fatalf("second load: %v", err)
	}
	second := compiler.OiiotoolArgs()
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("reload changed output:\n%v\n%v", first, second)
	}
	compiler.Clear()
	if len(compiler.ColorOperators()) != 0 {
		t.Fatal("Clear must drop operators")
	}
}

func TestResolveFileVerbatim(t *testing.T) {
	dir := t.TempDir()
	lut := filepath.Join(dir, "grade.cube")
	writeFile(t, lut, "# lut\n")
	path := filepath.Join(dir, "effect.json")
	writeFile(t, path, `{
  "lut": {"class": "OCIOFileTransform", "subTrackIndex": 0, "node": {"file": `+jsonString(lut)+`}}
}`)

	compiler := effect.NewCompiler(path, effect.Options{})
	if err := compiler.Load(); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	got := compiler.ColorOperators()[0].(operator.FileLUT).File
	if got != filepath.ToSlash(lut) {
		t.Fatalf("verbatim path must win: got %q want %q", got, filepath.ToSlash(lut))
	}
}

func TestResolveFileTargetDirOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "effect.json")
	writeFile(t, path, `{
  "lut": {"class": "OCIOFileTransform", "subTrackIndex": 0, "node": {"file": "/nowhere/grade.cube"}}
}`)

	compiler := effect.NewCompiler(path, effect.Options{TargetDir: "/mnt/luts"})
	if err := compiler.Load(); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	got := compiler.ColorOperators()[0].(operator.FileLUT).File
	if got != "/mnt/luts/grade.cube" {
		t.Fatalf("target dir must rewrite by basename: %q", got)
	}
}

func TestResolveFileSiblingLookup(t *testing.T) {
	dir := t.TempDir()
	actual := filepath.Join(dir, "resources", "grade.cube")
	writeFile(t, actual, "# lut\n")
	path := filepath.Join(dir, "effect.json")
	writeFile(t, path, `{
  "lut": {"class": "OCIOFileTransform", "subTrackIndex": 0, "node": {"file": "/render/node/grade.cube"}}
}`)

	compiler := effect.NewCompiler(path, effect.Options{})
	if err := compiler.Load(); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	got := compiler.ColorOperators()[0].(operator.FileLUT).File
	if got != filepath.ToSlash(actual) {
		t.Fatalf("sibling lookup: got %q want %q", got, filepath.ToSlash(actual))
	}
}

func TestResolveFileKeepsLiteralWhenUnresolved(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "effect.json")
	writeFile(t, path, `{
  "lut": {"class": "OCIOFileTransform", "subTrackIndex": 0, "node": {"file": "/nowhere/grade.cube"}}
}`)

	compiler := effect.NewCompiler(path, effect.Options{})
	if err := compiler.Load(); err != nil {
		t.Fatalf("unresolved references must not be fatal: %v", err)
	}
	got := compiler.ColorOperators()[0].(operator.FileLUT).File
	if got != "/nowhere/grade.cube" {
		t.Fatalf("literal path must be kept: %q", got)
	}
}

func TestOiiotoolArgs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "effect.json")
	writeFile(t, path, `{
  "convert": {"class": "OCIOColorSpace", "subTrackIndex": 0, "node": {"in_colorspace": "A", "out_colorspace": "B"}},
  "crop": {"class": "Crop", "subTrackIndex": 1, "node": {"box": [0, 0, 1920, 1080]}}
}`)

	compiler := effect.NewCompiler(path, effect.Options{})
	if err := compiler.Load(); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	want := []string{"--colorconvert", "A", "B", "--crop", "0,0,1920,1080"}
	if got := compiler.OiiotoolArgs(); !reflect.DeepEqual(got, want) {
		t.Fatalf("args: got %v want %v", got, want)
	}
}

func jsonString(s string) string {
	out := `"`
	for _, r := range s {
		switch r {
		case '\\':
			out += `\\`
		case '"':
			out += `\"`
		default:
			out += string(r)
		}
	}
	return out + `"`
}
