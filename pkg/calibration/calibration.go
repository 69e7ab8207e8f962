// Package calibration resolves per-specimen imaging calibration,
// primarily the z-axis anisotropy scale factor needed to convert
// reconstructions from pixel to micron units.
//
// The axial (z) resolution varies per imaging session and lives in
// external metadata; the lateral (x/y) pixel scale is a fixed property
// of the rig. [Source] abstracts where the z value comes from: a static
// TOML file ([StaticSource]), a MongoDB metadata collection
// ([MongoSource]), or a metadata HTTP service ([Client]). Wrap any of
// them in [CachedSource] to avoid repeated lookups.
package calibration

import (
	"context"

	"github.com/neurokit/morph/pkg/affine"
	"github.com/neurokit/morph/pkg/morph"
)

// DefaultLateralScale is the x/y pixel size in µm/px of the imaging
// rigs this toolkit was calibrated for.
const DefaultLateralScale = 0.1144

// Source resolves the z-axis anisotropy scale factor for a specimen.
type Source interface {
	// ZResolution returns the z scale in µm/px for the specimen, or an
	// error carrying CALIBRATION_NOT_FOUND when the specimen is
	// unknown.
	ZResolution(ctx context.Context, specimenID int64) (float64, error)
}

// PixelToMicron converts a morphology from pixel to micron units:
// lateral axes by DefaultLateralScale, the z axis by the specimen's
// anisotropy value from src. The input is not mutated.
func PixelToMicron(ctx context.Context, m *morph.Morphology, specimenID int64, src Source) (*morph.Morphology, error) {
	z, err := src.ZResolution(ctx, specimenID)
	if err != nil {
		return nil, err
	}
	return affine.Scale(DefaultLateralScale, DefaultLateralScale, z).Apply(m)
}
