package models

import (
	"fmt"

	"github.com/san-kum/rkshoot/internal/dynamo"
)

// Kind discriminates the derivative model variants.
type Kind string

const (
	KindPolytrope Kind = "polytrope"
	KindPendulum  Kind = "pendulum"
)

// New returns the model of the given kind bound to param: the polytropic
// index n for KindPolytrope, the drive angle theta for KindPendulum.
func New(kind Kind, param float64) (dynamo.Model, error) {
	switch kind {
	case KindPolytrope:
		return NewPolytrope(param), nil
	case KindPendulum:
		return NewPendulumDrive(param), nil
	default:
		return nil, fmt.Errorf("unknown model: %s", kind)
	}
}

// Kinds lists the available model kinds.
func Kinds() []Kind {
	return []Kind{KindPolytrope, KindPendulum}
}

// reduced is the dy/dx = z half shared by every second-order model.
func reduced(x, y, z float64) float64 {
	return z
}
