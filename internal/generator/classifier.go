package generator

import "github.com/cmmoran/creatorgen/internal/model"

// Policy decides the expression used when a caller leaves a dependency unset.
type Policy int

const (
	PolicyStandIn      Policy = iota // generated stand-in from the StandIn strategy
	PolicyValueDefault               // default
	PolicyEmptyString                // string.Empty
)

func (p Policy) String() string {
	switch p {
	case PolicyValueDefault:
		return "value-default"
	case PolicyEmptyString:
		return "empty-string"
	default:
		return "stand-in"
	}
}

// Classify looks only at the parameter's type; names never matter.
func Classify(param model.ParameterDescriptor) Policy {
	switch {
	case param.IsStringType:
		return PolicyEmptyString
	case param.IsValueType:
		return PolicyValueDefault
	default:
		return PolicyStandIn
	}
}

// DefaultExpression renders the fallback for param under its policy.
func DefaultExpression(param model.ParameterDescriptor, standIn StandIn) string {
	switch Classify(param) {
	case PolicyEmptyString:
		return "string.Empty"
	case PolicyValueDefault:
		return "default"
	default:
		return standIn.Expression(param.Type, standIn.Behavior().Name)
	}
}
