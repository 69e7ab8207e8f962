package calibration

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/neurokit/morph/pkg/errors"
)

// NewRouter exposes a Source as a small JSON metadata service:
//
//	GET /specimens/{specimenID}/z-resolution
//
// The core library never serves HTTP; this router exists so lab
// deployments can put one calibration store behind many workers, with
// [Client] as the matching Source on the consumer side.
func NewRouter(src Source) chi.Router {
	r := chi.NewRouter()
	r.Get("/specimens/{specimenID}/z-resolution", func(w http.ResponseWriter, req *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(req, "specimenID"), 10, 64)
		if err != nil {
			http.Error(w, "specimen id must be an integer", http.StatusBadRequest)
			return
		}
		z, err := src.ZResolution(req.Context(), id)
		if err != nil {
			if errors.Is(err, errors.ErrCodeCalibrationNotFound) {
				http.Error(w, err.Error(), http.StatusNotFound)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(zResolutionResponse{SpecimenID: id, ZResolution: z})
	})
	return r
}
