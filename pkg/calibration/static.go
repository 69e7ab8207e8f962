package calibration

import (
	"context"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/neurokit/morph/pkg/errors"
)

// StaticSource serves z resolutions from a TOML file:
//
//	default_z_resolution = 0.28
//
//	[specimens]
//	651806289 = 0.33
//	715953708 = 0.26
//
// A missing specimen falls back to default_z_resolution when set,
// otherwise the lookup fails with CALIBRATION_NOT_FOUND.
type StaticSource struct {
	defaultZ   float64
	hasDefault bool
	specimens  map[int64]float64
}

type staticFile struct {
	DefaultZResolution *float64           `toml:"default_z_resolution"`
	Specimens          map[string]float64 `toml:"specimens"`
}

// NewStaticSource loads a calibration file.
func NewStaticSource(path string) (*StaticSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseStatic(data)
}

// ParseStatic builds a StaticSource from raw TOML.
func ParseStatic(data []byte) (*StaticSource, error) {
	var f staticFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse calibration file")
	}
	s := &StaticSource{specimens: make(map[int64]float64, len(f.Specimens))}
	if f.DefaultZResolution != nil {
		s.defaultZ = *f.DefaultZResolution
		s.hasDefault = true
	}
	for key, z := range f.Specimens {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "specimen key %q is not an integer", key)
		}
		s.specimens[id] = z
	}
	return s, nil
}

// ZResolution implements Source.
func (s *StaticSource) ZResolution(ctx context.Context, specimenID int64) (float64, error) {
	if z, ok := s.specimens[specimenID]; ok {
		return z, nil
	}
	if s.hasDefault {
		return s.defaultZ, nil
	}
	return 0, errors.New(errors.ErrCodeCalibrationNotFound, "specimen %d has no z resolution", specimenID)
}

var _ Source = (*StaticSource)(nil)
