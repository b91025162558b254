package svd

import "errors"

var (
	ErrUnknownBase     = errors.New("derivedFrom names an unknown element")
	ErrDerivationCycle = errors.New("derivedFrom chain forms a cycle")
	ErrDimIndex        = errors.New("dimIndex does not match dim")
	ErrNoDevice        = errors.New("document has no device element")
)
