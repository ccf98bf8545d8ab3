package operator

import "lutforge/internal/ocio"

// Operator is any decoded effect node. Concrete operators satisfy exactly
// one of ColorOperator or RepositionOperator.
type Operator interface {
	operatorClass() string
}

// ColorOperator is an effect node contributing to the color pipeline.
type ColorOperator interface {
	Operator
	// OCIOTransforms returns the native transforms the node expands into,
	// in application order.
	OCIOTransforms() []ocio.Transform
}

// RepositionOperator is an effect node contributing to the geometric
// repositioning of the frame.
type RepositionOperator interface {
	Operator
	// OiiotoolArgs returns the literal oiiotool arguments for the node.
	OiiotoolArgs() []string
}
