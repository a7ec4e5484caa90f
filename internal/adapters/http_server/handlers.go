package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/abhimit04/hotel-agent/internal/app"
	"github.com/abhimit04/hotel-agent/internal/domain"
)

const dateLayout = "2006-01-02"

type Handlers struct{ S *app.SearchService }

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/search", h.search)
	s.mux.Get("/hotel-details", h.hotelDetails)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// parseStay validates the checkin/checkout pair before any network call:
// both required, layout 2006-01-02, checkout strictly after checkin.
func parseStay(r *http.Request) (checkin, checkout string, bad *problem) {
	checkin = strings.TrimSpace(r.URL.Query().Get("checkin"))
	checkout = strings.TrimSpace(r.URL.Query().Get("checkout"))
	if checkin == "" || checkout == "" {
		return "", "", &problem{Status: http.StatusBadRequest, Title: "Invalid dates", Detail: "checkin and checkout are both required"}
	}
	in, err := time.Parse(dateLayout, checkin)
	if err != nil {
		return "", "", &problem{Status: http.StatusBadRequest, Title: "Invalid dates", Detail: "checkin must be YYYY-MM-DD"}
	}
	out, err := time.Parse(dateLayout, checkout)
	if err != nil {
		return "", "", &problem{Status: http.StatusBadRequest, Title: "Invalid dates", Detail: "checkout must be YYYY-MM-DD"}
	}
	if !out.After(in) {
		return "", "", &problem{Status: http.StatusBadRequest, Title: "Invalid dates", Detail: "checkout must be after checkin"}
	}
	return checkin, checkout, nil
}

func (h *Handlers) search(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("query"))
	if query == "" {
		writeProblem(w, http.StatusBadRequest, "Missing query", "query parameter is required")
		return
	}
	checkin, checkout, bad := parseStay(r)
	if bad != nil {
		writeProblem(w, bad.Status, bad.Title, bad.Detail)
		return
	}

	res, err := h.S.Search(r.Context(), query, checkin, checkout)
	if err != nil {
		writeSearchError(w, err)
		return
	}
	writeJSON(w, r, res)
}

func (h *Handlers) hotelDetails(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("hotel_name"))
	if name == "" {
		writeProblem(w, http.StatusBadRequest, "Missing hotel_name", "hotel_name parameter is required")
		return
	}
	checkin, checkout, bad := parseStay(r)
	if bad != nil {
		writeProblem(w, bad.Status, bad.Title, bad.Detail)
		return
	}

	hotel, summary, err := h.S.HotelDetails(r.Context(), name, checkin, checkout)
	if err != nil {
		writeSearchError(w, err)
		return
	}
	writeJSON(w, r, struct {
		Hotel   domain.MergedHotel `json:"hotel"`
		Summary string             `json:"summary,omitempty"`
	}{Hotel: hotel, Summary: summary})
}

// writeSearchError maps the pipeline's taxonomy onto the HTTP surface:
// the two user-facing miss conditions are 404s, everything else is a 500
// (contained failures never reach here).
func writeSearchError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrLocationNotFound):
		writeProblem(w, http.StatusNotFound, "Location not found", "could not resolve the requested place or hotel")
	case errors.Is(err, domain.ErrNoCandidates):
		writeProblem(w, http.StatusNotFound, "No hotel data", "the place resolved but no provider returned hotels")
	default:
		log.Error().Err(err).Msg("search failed")
		writeProblem(w, http.StatusInternalServerError, "Internal error", "")
	}
}

func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	// If the client already has this version, short-circuit.
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}
