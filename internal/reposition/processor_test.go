package reposition_test

import (
	"reflect"
	"testing"

	"lutforge/internal/geometry"
	"lutforge/internal/operator"
	"lutforge/internal/reposition"
)

func TestEmptyProcessor(t *testing.T) {
	proc := &reposition.Processor{}
	if args := proc.OiiotoolArgs(); len(args) != 0 {
		t.Fatalf("empty processor must emit nothing, got %v", args)
	}
}

func TestReformatOnly(t *testing.T) {
	proc := &reposition.Processor{DstHeight: 1080}
	want := []string{"--resize", "0x1080"}
	if got := proc.OiiotoolArgs(); !reflect.DeepEqual(got, want) {
		t.Fatalf("reformat: got %v want %v", got, want)
	}
}

func TestFitModes(t *testing.T) {
	cases := []struct {
		fit  string
		want []string
	}{
		{reposition.FitLetterbox, []string{"--fit:fillmode=letterbox", "1920x1080"}},
		{reposition.FitWidth, []string{"--fit:fillmode=width", "1920x1080"}},
		{reposition.FitHeight, []string{"--fit:fillmode=height", "1920x1080"}},
		{"", []string{"--resize", "1920x1080"}},
		{"stretch", []string{"--resize", "1920x1080"}},
	}
	for _, tc := range cases {
		proc := &reposition.Processor{DstWidth: 1920, DstHeight: 1080, Fit: tc.fit}
		if got := proc.OiiotoolArgs(); !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("fit %q: got %v want %v", tc.fit, got, tc.want)
		}
	}
}

func TestOperatorsPrecedeReformat(t *testing.T) {
	proc := &reposition.Processor{
		Operators: []operator.RepositionOperator{
			operator.Transform{Scale: [2]float64{0.5, 0.5}},
			operator.Mirror{Flip: true, Flop: true},
			operator.Crop{Box: [4]float64{0, 0, 1920, 1080}},
		},
		DstHeight: 1080,
	}
	want := []string{
		"--warp:filter=cubic:recompute_roi=1",
		"0.5,0.0,0.0,0.0,0.5,0.0,0.0,0.0,1.0",
		"--flop", "--flip",
		"--crop", "0,0,1920,1080",
		"--resize", "0x1080",
	}
	if got := proc.OiiotoolArgs(); !reflect.DeepEqual(got, want) {
		t.Fatalf("args: got %v want %v", got, want)
	}
}

func TestMatrixFoldsOperators(t *testing.T) {
	proc := &reposition.Processor{
		Operators: []operator.RepositionOperator{
			operator.Transform{Translate: [2]float64{10, 0}, Scale: [2]float64{1, 1}},
			operator.Transform{Translate: [2]float64{0, 5}, Scale: [2]float64{1, 1}},
		},
	}
	matrix := proc.Matrix(1920, 1080)
	want := geometry.Identity().
		Mul(geometry.Translate(0, 5)).
		Mul(geometry.Translate(10, 0))
	if matrix != want {
		t.Fatalf("chained matrix: got %v want %v", matrix, want)
	}
}

func TestCornerPinCoords(t *testing.T) {
	proc := &reposition.Processor{}
	coords := proc.CornerPinCoords(1920, 1080, true)
	if len(coords) != 8 {
		t.Fatalf("expected 8 coordinates, got %d", len(coords))
	}
	want := []float64{0, 1080, 1920, 1080, 0, 0, 1920, 0}
	if !reflect.DeepEqual(coords, want) {
		t.Fatalf("identity corner pin: got %v want %v", coords, want)
	}
}
