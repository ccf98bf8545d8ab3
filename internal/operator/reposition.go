package operator

import (
	"strconv"
	"strings"

	"lutforge/internal/geometry"
)

// warpFlag keeps the warp filter and region recompute choices in one place.
// TODO: expose the filter once a renderer needs something other than cubic.
const warpFlag = "--warp:filter=cubic:recompute_roi=1"

// Transform repositions the frame: translate in the outer frame, rotate and
// scale about a pivot.
type Transform struct {
	Translate [2]float64
	Rotate    float64
	Scale     [2]float64
	Center    [2]float64
	Invert    bool
	SkewX     float64
	SkewY     float64
	SkewOrder string
}

func (Transform) operatorClass() string { return "Transform" }

// Matrix returns the node's composed transform matrix.
func (t Transform) Matrix() geometry.Matrix {
	return geometry.Calculate(t.Translate, t.Rotate, t.Scale, t.Center)
}

func (t Transform) OiiotoolArgs() []string {
	warp := geometry.Identity().Mul(t.Matrix()).WarpCSV()
	return []string{warpFlag, warp}
}

// Crop cuts the frame to a pixel box.
type Crop struct {
	Box [4]float64
}

func (Crop) operatorClass() string { return "Crop" }

func (c Crop) OiiotoolArgs() []string {
	parts := make([]string, 0, 4)
	for _, v := range c.Box {
		parts = append(parts, strconv.FormatFloat(v, 'f', -1, 64))
	}
	// xmin,ymin,xmax,ymax
	return []string{"--crop", strings.Join(parts, ",")}
}

// Mirror reflects the frame vertically (flip) and/or horizontally (flop).
type Mirror struct {
	Flip bool
	Flop bool
}

func (Mirror) operatorClass() string { return "Mirror2" }

func (m Mirror) OiiotoolArgs() []string {
	var args []string
	if m.Flop {
		args = append(args, "--flop")
	}
	if m.Flip {
		args = append(args, "--flip")
	}
	return args
}

// CornerPin maps four source corners onto four destination corners.
type CornerPin struct {
	From [4][2]float64
	To   [4][2]float64
}

func (CornerPin) operatorClass() string { return "CornerPin2D" }

// OiiotoolArgs is empty for a bare corner pin; pin coordinates are emitted
// from a composed matrix by the reposition processor instead.
func (CornerPin) OiiotoolArgs() []string {
	return nil
}
