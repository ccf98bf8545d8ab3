package reposition

import (
	"fmt"

	"lutforge/internal/geometry"
	"lutforge/internal/operator"
)

// Fit modes understood by oiiotool's --fit flag. Any other value falls back
// to a plain --resize.
const (
	FitLetterbox = "letterbox"
	FitWidth     = "width"
	FitHeight    = "height"
)

// Processor turns an ordered list of reposition operators, plus an optional
// destination size, into oiiotool arguments.
type Processor struct {
	Operators []operator.RepositionOperator

	SrcWidth  int
	SrcHeight int
	DstWidth  int
	DstHeight int

	// Fit selects the reformat mode when a destination size is set.
	Fit string
}

// OiiotoolArgs returns the literal oiiotool arguments: every operator in
// order, then the reformat stage when a destination dimension is set. A zero
// dimension is kept literal ("0x1080" fits by height).
func (p *Processor) OiiotoolArgs() []string {
	var args []string
	for _, op := range p.Operators {
		args = append(args, op.OiiotoolArgs()...)
	}

	if p.DstWidth != 0 || p.DstHeight != 0 {
		size := fmt.Sprintf("%dx%d", p.DstWidth, p.DstHeight)
		switch p.Fit {
		case FitLetterbox, FitWidth, FitHeight:
			args = append(args, "--fit:fillmode="+p.Fit, size)
		default:
			args = append(args, "--resize", size)
		}
	}
	return args
}

// Matrix folds the processor's transform and mirror operators into one
// chained matrix for the given frame size. Operators without a matrix form
// (crops, corner pins) are skipped.
func (p *Processor) Matrix(width, height float64) geometry.Matrix {
	var nodes []geometry.Matrix
	var flip, flop bool
	for _, op := range p.Operators {
		switch typed := op.(type) {
		case operator.Transform:
			nodes = append(nodes, typed.Matrix())
		case operator.Mirror:
			flip = flip || typed.Flip
			flop = flop || typed.Flop
		}
	}
	return geometry.Chain(nodes, width, height, flip, flop)
}

// CornerPinCoords returns the folded matrix applied to the frame corners,
// ordered for the given origin convention.
func (p *Processor) CornerPinCoords(width, height float64, originUpperLeft bool) []float64 {
	return geometry.CornerPin(p.Matrix(width, height), width, height, originUpperLeft)
}
