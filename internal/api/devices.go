package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nerrad567/sign-fleet-core/internal/directory"
)

// handleListDevices returns the device directory.
//
// GET /api/v1/devices
func (s *Server) handleListDevices(w http.ResponseWriter, r *http.Request) {
	devices, err := s.fleet.ListDevices(r.Context())
	if err != nil {
		writeFleetError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, devices)
}

// putDeviceRequest is the body for creating or updating a directory entry.
type putDeviceRequest struct {
	Label string `json:"label"`
}

// handlePutDevice inserts or updates a directory entry.
//
// PUT /api/v1/devices/{address}
//
// Only managed (sqlite) directories accept writes; a csv-backed directory
// answers 409 and must be edited on disk instead.
func (s *Server) handlePutDevice(w http.ResponseWriter, r *http.Request) {
	writable, ok := s.source.(directory.Writable)
	if !ok {
		writeConflict(w, directory.ErrReadOnlySource.Error())
		return
	}

	var req putDeviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	device := directory.Device{
		Address: chi.URLParam(r, "address"),
		Label:   req.Label,
	}

	if err := writable.Put(r.Context(), device); err != nil {
		switch {
		case errors.Is(err, directory.ErrInvalidAddress):
			writeBadRequest(w, err.Error())
		default:
			writeInternalError(w, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, device)
}

// handleDeleteDevice removes a directory entry.
//
// DELETE /api/v1/devices/{address}
func (s *Server) handleDeleteDevice(w http.ResponseWriter, r *http.Request) {
	writable, ok := s.source.(directory.Writable)
	if !ok {
		writeConflict(w, directory.ErrReadOnlySource.Error())
		return
	}

	address := chi.URLParam(r, "address")
	if err := writable.Remove(r.Context(), address); err != nil {
		switch {
		case errors.Is(err, directory.ErrDeviceNotFound):
			writeNotFound(w, err.Error())
		default:
			writeInternalError(w, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"deleted": address})
}
