// Package affine applies affine coordinate transforms to morphologies.
//
// A transform is the usual 3x4 affine: a 3x3 linear part (rotation,
// scale, shear) plus a 3x1 translation. Applying one produces a new
// morphology; node types, radii and topology are untouched.
package affine

import (
	"gonum.org/v1/gonum/mat"

	"github.com/neurokit/morph/pkg/errors"
	"github.com/neurokit/morph/pkg/morph"
)

// Transform is an affine coordinate transform.
// The zero value is not usable - use FromList, Translation or Scale.
type Transform struct {
	linear      *mat.Dense    // 3x3
	translation *mat.VecDense // 3
}

// FromList builds a transform from a 12-element row-major layout: the
// first nine elements are the 3x3 linear part, the last three the
// translation.
func FromList(v [12]float64) *Transform {
	return &Transform{
		linear:      mat.NewDense(3, 3, v[:9:9]),
		translation: mat.NewVecDense(3, v[9:12:12]),
	}
}

// Translation returns a pure translation transform.
func Translation(dx, dy, dz float64) *Transform {
	return FromList([12]float64{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
		dx, dy, dz,
	})
}

// Scale returns a pure axis-aligned scaling transform.
func Scale(sx, sy, sz float64) *Transform {
	return FromList([12]float64{
		sx, 0, 0,
		0, sy, 0,
		0, 0, sz,
		0, 0, 0,
	})
}

// Point maps a single coordinate through the transform.
func (t *Transform) Point(x, y, z float64) (float64, float64, float64) {
	var out mat.VecDense
	out.MulVec(t.linear, mat.NewVecDense(3, []float64{x, y, z}))
	out.AddVec(&out, t.translation)
	return out.AtVec(0), out.AtVec(1), out.AtVec(2)
}

// Apply maps every node coordinate through the transform and returns
// the resulting morphology. The input is not mutated.
func (t *Transform) Apply(m *morph.Morphology) (*morph.Morphology, error) {
	records := m.Records()
	for i := range records {
		records[i].X, records[i].Y, records[i].Z = t.Point(records[i].X, records[i].Y, records[i].Z)
	}
	return morph.New(records)
}

// NormalizePosition translates the morphology so its soma sits at the
// origin. Fails with UNRESOLVED_SOMA when there is no soma to anchor.
func NormalizePosition(m *morph.Morphology) (*morph.Morphology, error) {
	soma := m.Soma()
	if soma == nil {
		return nil, errors.New(errors.ErrCodeUnresolvedSoma, "morphology has no soma node")
	}
	return Translation(-soma.X, -soma.Y, -soma.Z).Apply(m)
}
