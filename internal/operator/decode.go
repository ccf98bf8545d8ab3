package operator

import "lutforge/internal/ocio"

// DecodeFunc builds an operator from a raw node field dictionary.
type DecodeFunc func(node map[string]any) Operator

// registry maps node class names onto decoders. Built once; unrecognized
// class names are the caller's concern (the effect compiler skips them).
var registry = map[string]DecodeFunc{
	"OCIOColorSpace":    decodeColorSpace,
	"OCIOFileTransform": decodeFileLUT,
	"OCIOCDLTransform":  decodeCDL,
	"Transform":         decodeTransform,
	"Crop":              decodeCrop,
	"Mirror2":           decodeMirror,
	"CornerPin2D":       decodeCornerPin,
}

// Decode maps a node class name and its field dictionary onto an operator.
// The second result reports whether the class name is recognized.
func Decode(class string, node map[string]any) (Operator, bool) {
	decode, ok := registry[class]
	if !ok {
		return nil, false
	}
	return decode(node), true
}

// Known reports whether a node class name has a registered decoder.
func Known(class string) bool {
	_, ok := registry[class]
	return ok
}

func decodeColorSpace(node map[string]any) Operator {
	return ColorSpace{
		In:  str(node, "in_colorspace", ""),
		Out: str(node, "out_colorspace", ""),
	}
}

func decodeFileLUT(node map[string]any) Operator {
	return FileLUT{
		File:          str(node, "file", ""),
		CCCID:         str(node, "cccid", ""),
		Direction:     ocio.ParseDirection(node["direction"]),
		Interpolation: ocio.ParseInterpolation(str(node, "interpolation", "linear")),
	}
}

func decodeCDL(node map[string]any) Operator {
	op := CDL{
		Slope:      vec3(node, "slope", [3]float64{0, 0, 0}),
		Offset:     vec3(node, "offset", [3]float64{0, 0, 0}),
		Power:      vec3(node, "power", [3]float64{1, 1, 1}),
		Saturation: num(node, "saturation", 1),
		Direction:  ocio.ParseDirection(node["direction"]),
	}
	if file := str(node, "file", ""); file != "" {
		op.File = file
		op.CCCID = str(node, "cccid", "")
		op.Interpolation = ocio.ParseInterpolation(str(node, "interpolation", "linear"))
	}
	return op
}

func decodeTransform(node map[string]any) Operator {
	return Transform{
		Translate: vec2(node, "translate", [2]float64{0, 0}),
		Rotate:    num(node, "rotate", 0),
		Scale:     vec2(node, "scale", [2]float64{1, 1}),
		Center:    vec2(node, "center", [2]float64{0, 0}),
		Invert:    boolean(node, "invert", false),
		SkewX:     num(node, "skewX", 0),
		SkewY:     num(node, "skewY", 0),
		SkewOrder: str(node, "skew_order", "XY"),
	}
}

func decodeCrop(node map[string]any) Operator {
	return Crop{Box: vec4(node, "box", [4]float64{0, 0, 1920, 1080})}
}

func decodeMirror(node map[string]any) Operator {
	return Mirror{
		Flip: boolean(node, "flip", false),
		Flop: boolean(node, "flop", false),
	}
}

func decodeCornerPin(node map[string]any) Operator {
	return CornerPin{
		From: [4][2]float64{
			vec2(node, "from1", [2]float64{}),
			vec2(node, "from2", [2]float64{}),
			vec2(node, "from3", [2]float64{}),
			vec2(node, "from4", [2]float64{}),
		},
		To: [4][2]float64{
			vec2(node, "to1", [2]float64{}),
			vec2(node, "to2", [2]float64{}),
			vec2(node, "to3", [2]float64{}),
			vec2(node, "to4", [2]float64{}),
		},
	}
}

// DecodeLookProduct builds a LookProduct from the data block of a look
// document: an ordered ocioLookItems list plus the working space.
func DecodeLookProduct(data map[string]any) LookProduct {
	product := LookProduct{
		WorkingSpace: str(data, "ocioLookWorkingSpace", ""),
	}
	items, _ := data["ocioLookItems"].([]any)
	for _, raw := range items {
		fields, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		product.Items = append(product.Items, LookItem{
			Name:             str(fields, "name", ""),
			Ext:              str(fields, "ext", ""),
			File:             str(fields, "file", ""),
			InputColorspace:  str(fields, "input_colorspace", ""),
			OutputColorspace: str(fields, "output_colorspace", ""),
			Direction:        ocio.ParseDirection(fields["direction"]),
			Interpolation:    ocio.ParseInterpolation(str(fields, "interpolation", "linear")),
		})
	}
	return product
}

// Field helpers below make up the single defaulting pass: a missing key or a
// value of the wrong shape yields the documented default.

func str(node map[string]any, key, def string) string {
	if v, ok := node[key].(string); ok {
		return v
	}
	return def
}

func num(node map[string]any, key string, def float64) float64 {
	switch v := node[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return def
	}
}

func boolean(node map[string]any, key string, def bool) bool {
	switch v := node[key].(type) {
	case bool:
		return v
	case float64:
		return v != 0
	default:
		return def
	}
}

func floats(v any) ([]float64, bool) {
	items, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]float64, 0, len(items))
	for _, item := range items {
		f, ok := item.(float64)
		if !ok {
			return nil, false
		}
		out = append(out, f)
	}
	return out, true
}

// vec2 reads a 2-vector, promoting a scalar to an equal pair.
func vec2(node map[string]any, key string, def [2]float64) [2]float64 {
	switch v := node[key].(type) {
	case float64:
		return [2]float64{v, v}
	default:
		if vs, ok := floats(v); ok && len(vs) >= 2 {
			return [2]float64{vs[0], vs[1]}
		}
	}
	return def
}

func vec3(node map[string]any, key string, def [3]float64) [3]float64 {
	if vs, ok := floats(node[key]); ok && len(vs) >= 3 {
		return [3]float64{vs[0], vs[1], vs[2]}
	}
	return def
}

func vec4(node map[string]any, key string, def [4]float64) [4]float64 {
	if vs, ok := floats(node[key]); ok && len(vs) >= 4 {
		return [4]float64{vs[0], vs[1], vs[2], vs[3]}
	}
	return def
}
