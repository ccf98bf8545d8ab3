package ocio

import (
	"strings"

	"gopkg.in/yaml.v3"

	"lutforge/internal/geometry"
)

// Direction is the sense in which a transform applies.
type Direction int

const (
	DirectionForward Direction = iota
	DirectionInverse
)

// ParseDirection maps node-data direction values onto a Direction. The value
// "inverse" selects the inverse sense, anything else is forward.
func ParseDirection(v any) Direction {
	if s, ok := v.(string); ok && s == "inverse" {
		return DirectionInverse
	}
	return DirectionForward
}

func (d Direction) String() string {
	if d == DirectionInverse {
		return "inverse"
	}
	return "forward"
}

// Interpolation selects the sampling mode of a file transform.
type Interpolation int

const (
	InterpLinear Interpolation = iota
	InterpBest
	InterpNearest
	InterpTetrahedral
	InterpCubic
)

// ParseInterpolation maps an interpolation name onto the fixed enumeration,
// defaulting to linear for unrecognized names.
func ParseInterpolation(name string) Interpolation {
	switch name {
	case "linear":
		return InterpLinear
	case "best":
		return InterpBest
	case "nearest":
		return InterpNearest
	case "tetrahedral":
		return InterpTetrahedral
	case "cubic":
		return InterpCubic
	default:
		return InterpLinear
	}
}

func (i Interpolation) String() string {
	switch i {
	case InterpBest:
		return "best"
	case InterpNearest:
		return "nearest"
	case InterpTetrahedral:
		return "tetrahedral"
	case InterpCubic:
		return "cubic"
	default:
		return "linear"
	}
}

// Transform is a node of a color pipeline. Concrete types cover the
// transforms the compiler synthesizes; RawTransform carries anything parsed
// from a base configuration through serialization unchanged.
type Transform interface {
	transformNode() *yaml.Node
}

// ColorSpaceTransform converts between two named color spaces.
type ColorSpaceTransform struct {
	Src string
	Dst string
}

func (t *ColorSpaceTransform) transformNode() *yaml.Node {
	return taggedFlowMapping("ColorSpaceTransform",
		"src", strScalar(t.Src),
		"dst", strScalar(t.Dst),
	)
}

// FileTransform applies a LUT or CDL file.
type FileTransform struct {
	Src           string
	CCCID         string
	Interpolation Interpolation
	Direction     Direction
}

func (t *FileTransform) transformNode() *yaml.Node {
	pairs := []any{"src", strScalar(t.Src)}
	if t.CCCID != "" {
		pairs = append(pairs, "cccid", strScalar(t.CCCID))
	}
	pairs = append(pairs, "interpolation", strScalar(t.Interpolation.String()))
	if t.Direction == DirectionInverse {
		pairs = append(pairs, "direction", strScalar(t.Direction.String()))
	}
	return taggedFlowMapping("FileTransform", pairs...)
}

// CDLTransform applies slope/offset/power/saturation grading values.
type CDLTransform struct {
	Slope     [3]float64
	Offset    [3]float64
	Power     [3]float64
	Sat       float64
	Direction Direction
}

func (t *CDLTransform) transformNode() *yaml.Node {
	pairs := []any{
		"slope", floatSeq(t.Slope[:]),
		"offset", floatSeq(t.Offset[:]),
		"power", floatSeq(t.Power[:]),
		"sat", floatScalar(t.Sat),
	}
	if t.Direction == DirectionInverse {
		pairs = append(pairs, "direction", strScalar(t.Direction.String()))
	}
	return taggedFlowMapping("CDLTransform", pairs...)
}

// GroupTransform applies an ordered list of child transforms.
type GroupTransform struct {
	Children []Transform
}

func (t *GroupTransform) transformNode() *yaml.Node {
	children := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, child := range t.Children {
		children.Content = append(children.Content, child.transformNode())
	}
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!<GroupTransform>"}
	node.Content = append(node.Content, strScalar("children"), children)
	return node
}

// RawTransform wraps a transform parsed from a base configuration.
type RawTransform struct {
	Node *yaml.Node
}

func (t *RawTransform) transformNode() *yaml.Node {
	return t.Node
}

// cleanTag strips the "!", "!<...>" wrappers a YAML parser may leave on a
// custom tag, returning the bare OCIO type name.
func cleanTag(tag string) string {
	tag = strings.TrimPrefix(tag, "!<")
	tag = strings.TrimSuffix(tag, ">")
	tag = strings.TrimPrefix(tag, "!")
	return tag
}

func strScalar(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func floatScalar(v float64) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: geometry.FormatFloat(v)}
}

func floatSeq(vs []float64) *yaml.Node {
	node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Style: yaml.FlowStyle}
	for _, v := range vs {
		node.Content = append(node.Content, floatScalar(v))
	}
	return node
}

func taggedFlowMapping(tag string, pairs ...any) *yaml.Node {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!<" + tag + ">", Style: yaml.FlowStyle}
	for i := 0; i < len(pairs); i += 2 {
		node.Content = append(node.Content, strScalar(pairs[i].(string)), pairs[i+1].(*yaml.Node))
	}
	return node
}
