package operator

import (
	"path/filepath"

	"lutforge/internal/ocio"
)

// ColorSpace converts between two named color spaces.
type ColorSpace struct {
	In  string
	Out string
}

func (ColorSpace) operatorClass() string { return "OCIOColorSpace" }

func (c ColorSpace) OCIOTransforms() []ocio.Transform {
	return []ocio.Transform{
		&ocio.ColorSpaceTransform{Src: c.In, Dst: c.Out},
	}
}

// FileLUT applies a LUT file.
type FileLUT struct {
	File          string
	CCCID         string
	Direction     ocio.Direction
	Interpolation ocio.Interpolation
}

func (FileLUT) operatorClass() string { return "OCIOFileTransform" }

func (f FileLUT) OCIOTransforms() []ocio.Transform {
	return []ocio.Transform{
		&ocio.FileTransform{
			Src:           filepath.ToSlash(f.File),
			CCCID:         f.CCCID,
			Direction:     f.Direction,
			Interpolation: f.Interpolation,
		},
	}
}

// CDL applies slope/offset/power/saturation grading, optionally preceded by
// a LUT file carried on the same node.
type CDL struct {
	File          string
	CCCID         string
	Slope         [3]float64
	Offset        [3]float64
	Power         [3]float64
	Saturation    float64
	Direction     ocio.Direction
	Interpolation ocio.Interpolation
}

func (CDL) operatorClass() string { return "OCIOCDLTransform" }

// OCIOTransforms expands the node into its native transforms. A node that
// carries a file emits the LUT first and the grade second, both in the same
// direction; a file-less node emits the grade only.
func (c CDL) OCIOTransforms() []ocio.Transform {
	cdl := &ocio.CDLTransform{
		Slope:     c.Slope,
		Offset:    c.Offset,
		Power:     c.Power,
		Sat:       c.Saturation,
		Direction: c.Direction,
	}
	if c.File == "" {
		return []ocio.Transform{cdl}
	}
	cccid := c.CCCID
	if cccid == "" {
		cccid = "0"
	}
	return []ocio.Transform{
		&ocio.FileTransform{
			Src:           filepath.ToSlash(c.File),
			CCCID:         cccid,
			Direction:     c.Direction,
			Interpolation: c.Interpolation,
		},
		cdl,
	}
}

// LookItem is one LUT descriptor inside a look product.
type LookItem struct {
	Name             string
	Ext              string
	File             string
	InputColorspace  string
	OutputColorspace string
	Direction        ocio.Direction
	Interpolation    ocio.Interpolation
}

// LookProduct is an ordered list of LUT items bracketed by conversions into
// and out of a working space.
type LookProduct struct {
	Items        []LookItem
	WorkingSpace string
}

func (LookProduct) operatorClass() string { return "LookProduct" }

// OCIOTransforms converts the working space into the first item's input
// space, applies every item's file transform in order, and converts the last
// item's output space back to the working space.
func (l LookProduct) OCIOTransforms() []ocio.Transform {
	var transforms []ocio.Transform
	for i, item := range l.Items {
		if i == 0 {
			transforms = append(transforms, &ocio.ColorSpaceTransform{
				Src: l.WorkingSpace,
				Dst: item.InputColorspace,
			})
		}
		transforms = append(transforms, &ocio.FileTransform{
			Src:           filepath.ToSlash(item.File),
			Direction:     item.Direction,
			Interpolation: item.Interpolation,
		})
		if i == len(l.Items)-1 {
			transforms = append(transforms, &ocio.ColorSpaceTransform{
				Src: item.OutputColorspace,
				Dst: l.WorkingSpace,
			})
		}
	}
	return transforms
}
