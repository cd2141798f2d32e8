// Public domain.

// Package pu derives standardised positional uncertainty from local
// frame variance-covariance matrices: error ellipse parameters, the
// circularised horizontal radius, and the Student's-t coverage factor
// scaling one sigma uncertainty to 95% confidence.
package pu

import (
	"errors"
	"math"

	"github.com/soniakeys/unit"
	"gonum.org/v1/gonum/mat"
)

var (
	// ErrCovariance is returned for a horizontal block that is not
	// positive semi-definite.
	ErrCovariance = errors.New("pu: horizontal block is not positive semi-definite")

	// ErrAxis is returned for a zero semi-major axis.
	ErrAxis = errors.New("pu: semi-major axis is zero")
)

// Ellipse is a horizontal error ellipse.  Orientation is the azimuth
// of the semi-major axis, clockwise from north.
type Ellipse struct {
	A, B        float64
	Orientation unit.Angle
}

// ErrorEllipse computes the error ellipse of the horizontal block of
// a local frame VCV.  Only the top left 2x2 block of v is read; the
// up component is ignored.  The block is assumed symmetric.
//
// A block that is not positive semi-definite returns ErrCovariance.
// Otherwise A ≥ B ≥ 0.
func ErrorEllipse(v mat.Matrix) (Ellipse, error) {
	vxx, vyy, vxy := v.At(0, 0), v.At(1, 1), v.At(0, 1)
	z := math.Hypot(vxx-vyy, 2*vxy)
	bb := .5 * (vxx + vyy - z)
	if bb < 0 {
		return Ellipse{}, ErrCovariance
	}
	return Ellipse{
		A:           math.Sqrt(.5 * (vxx + vyy + z)),
		B:           math.Sqrt(bb),
		Orientation: unit.Angle(math.Pi/2 - .5*math.Atan2(2*vxy, vxx-vyy)),
	}, nil
}

// Circularisation polynomial of the axis ratio.  Fixed calibration
// values, reproduced exactly.
const (
	q0 = 1.960790
	q1 = 0.004071
	q2 = 0.114276
	q3 = 0.371625
)

// CircRadius converts error ellipse axes to the circularised
// horizontal positional uncertainty radius at the confidence level of
// the axes.  Requires 0 ≤ b ≤ a; a zero semi-major axis returns
// ErrAxis.
func CircRadius(a, b float64) (float64, error) {
	if a == 0 {
		return 0, ErrAxis
	}
	c := b / a
	k := q0 + q1*c + q2*c*c + q3*c*c*c
	return a * k, nil
}

// KVal95 returns the coverage factor k converting a one sigma
// (68.27%) uncertainty to 95% confidence for the given degrees of
// freedom.  Degrees of freedom below 1 clamp to the dof 1 factor;
// above 120 the asymptotic normal factor 1.96 is returned.
func KVal95(dof int) float64 {
	switch {
	case dof < 1:
		return ttable95[0]
	case dof > 120:
		return 1.96
	}
	return ttable95[dof-1]
}

// Horizontal95 computes the 95% circularised horizontal positional
// uncertainty from a local frame VCV and the degrees of freedom of
// the adjustment that produced it.
func Horizontal95(v mat.Matrix, dof int) (float64, error) {
	e, err := ErrorEllipse(v)
	if err != nil {
		return 0, err
	}
	r, err := CircRadius(e.A, e.B)
	if err != nil {
		return 0, err
	}
	return r * KVal95(dof), nil
}
