package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/nerrad567/sign-fleet-core/internal/fleet"
)

// multipartMemoryLimit is how much of a multipart body is held in memory
// before spilling to temp files.
const multipartMemoryLimit = 32 << 20 // 32 MB

// handleListAssets returns every player's asset list.
//
// GET /api/v1/fleet/assets
func (s *Server) handleListAssets(w http.ResponseWriter, r *http.Request) {
	view, err := s.fleet.ListAllAssets(r.Context())
	if err != nil {
		writeFleetError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// handleListInactiveAssets returns every player's inactive assets.
//
// GET /api/v1/fleet/assets/inactive
func (s *Server) handleListInactiveAssets(w http.ResponseWriter, r *http.Request) {
	view, err := s.fleet.ListInactiveAssets(r.Context())
	if err != nil {
		writeFleetError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// handleCreateAsset deploys a new asset to the selected players.
//
// POST /api/v1/fleet/assets (multipart/form-data)
//
// Fields: name, start_date, end_date, duration, devices (repeated), and
// exactly one of file (the upload) or asset_url.
func (s *Server) handleCreateAsset(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		writeBadRequest(w, "invalid multipart form: "+err.Error())
		return
	}

	duration, err := fleet.ParseDuration(r.FormValue("duration"))
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	meta := fleet.AssetMetadata{
		Name:      r.FormValue("name"),
		StartDate: r.FormValue("start_date"),
		EndDate:   r.FormValue("end_date"),
		Duration:  duration,
		URL:       r.FormValue("asset_url"),
	}

	file, header, err := r.FormFile("file")
	switch {
	case err == nil:
		defer file.Close() //nolint:errcheck
		data, readErr := io.ReadAll(file)
		if readErr != nil {
			writeBadRequest(w, "reading uploaded file: "+readErr.Error())
			return
		}
		meta.File = &fleet.FileSource{
			Data:        data,
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
		}
	case errors.Is(err, http.ErrMissingFile):
		// URL-sourced asset; validation rejects the request if asset_url
		// is also missing.
	default:
		writeBadRequest(w, "reading file field: "+err.Error())
		return
	}

	addresses := r.MultipartForm.Value["devices"]

	var results fleet.Result
	if meta.File != nil {
		results, err = s.fleet.CreateFileAsset(r.Context(), meta, addresses)
	} else {
		results, err = s.fleet.CreateURLAsset(r.Context(), meta, addresses)
	}
	if err != nil {
		writeFleetError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, results)
}

// refsRequest is the body for delete and enable/disable operations.
type refsRequest struct {
	Refs      []string `json:"refs"`
	IsEnabled *bool    `json:"is_enabled,omitempty"`
}

// handleDeleteAssets deletes the referenced assets across the fleet.
//
// DELETE /api/v1/fleet/assets
// Body: {"refs": ["10.0.0.5|42", ...]}
func (s *Server) handleDeleteAssets(w http.ResponseWriter, r *http.Request) {
	var req refsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	results, err := s.fleet.DeleteAssets(r.Context(), req.Refs)
	if err != nil {
		writeFleetError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, results)
}

// handleSetAssetsEnabled enables or disables the referenced assets.
//
// PATCH /api/v1/fleet/assets
// Body: {"refs": ["10.0.0.5|42", ...], "is_enabled": true}
func (s *Server) handleSetAssetsEnabled(w http.ResponseWriter, r *http.Request) {
	var req refsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if req.IsEnabled == nil {
		writeBadRequest(w, "is_enabled is required")
		return
	}

	results, err := s.fleet.SetAssetsEnabled(r.Context(), req.Refs, *req.IsEnabled)
	if err != nil {
		writeFleetError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, results)
}

// handleFleetStatus returns the live fleet status view.
//
// GET /api/v1/fleet/status
func (s *Server) handleFleetStatus(w http.ResponseWriter, r *http.Request) {
	entries, err := s.fleet.ProbeStatus(r.Context())
	if err != nil {
		writeFleetError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
