// Public domain.

// Package vcv transforms variance-covariance matrices of adjusted
// station coordinates between the geocentric Cartesian frame and the
// local east/north/up frame at a station.
package vcv

import (
	"errors"

	"github.com/soniakeys/meeus/v3/globe"
	"gonum.org/v1/gonum/mat"
)

// ErrShape is returned for a VCV argument that is not 3x1 or 3x3.
var ErrShape = errors.New("vcv: matrix must be 3x1 or 3x3")

// RotationMatrix returns the rotation from the local east/north/up
// frame at p to the Cartesian frame.  Columns are the local basis
// vectors expressed in Cartesian coordinates.  Longitude is positive
// east.
//
// The matrix is orthonormal, so its transpose is the inverse rotation.
func RotationMatrix(p globe.Coord) *mat.Dense {
	sφ, cφ := p.Lat.Sincos()
	sλ, cλ := p.Lon.Sincos()
	return mat.NewDense(3, 3, []float64{
		-sλ, -sφ * cλ, cφ * cλ,
		cλ, -sφ * sλ, cφ * sλ,
		0, cφ, sφ,
	})
}

// canon copies a 3x3 VCV, or expands a 3x1 column of variances to the
// diagonal of an otherwise zero 3x3 VCV.
func canon(v mat.Matrix) (*mat.Dense, error) {
	switch r, c := v.Dims(); {
	case r != 3:
		return nil, ErrShape
	case c == 3:
		return mat.DenseCopyOf(v), nil
	case c == 1:
		d := mat.NewDense(3, 3, nil)
		for i := 0; i < 3; i++ {
			d.Set(i, i, v.At(i, 0))
		}
		return d, nil
	}
	return nil, ErrShape
}

// CartToLocal transforms a VCV from the Cartesian frame to the local
// frame at p.  The argument is either a full 3x3 VCV, assumed
// symmetric, or a 3x1 column of variances, expanded with zero
// covariances.  Any other shape returns ErrShape.
//
// The result is always a full 3x3 matrix.  A 3x1 argument is not
// collapsed back to a variance column.
func CartToLocal(v mat.Matrix, p globe.Coord) (*mat.Dense, error) {
	vc, err := canon(v)
	if err != nil {
		return nil, err
	}
	r := RotationMatrix(p)
	var vr, l mat.Dense
	vr.Mul(vc, r)
	l.Mul(r.T(), &vr)
	return &l, nil
}

// LocalToCart transforms a VCV from the local frame at p to the
// Cartesian frame.  Arguments and results are as with CartToLocal.
func LocalToCart(v mat.Matrix, p globe.Coord) (*mat.Dense, error) {
	vl, err := canon(v)
	if err != nil {
		return nil, err
	}
	r := RotationMatrix(p)
	var vr, c mat.Dense
	vr.Mul(vl, r.T())
	c.Mul(r, &vr)
	return &c, nil
}
