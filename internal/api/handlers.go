package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/yourusername/astramine/internal/mining"
	"github.com/yourusername/astramine/internal/service"
)

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// InsightsRequest carries a projection computed earlier and its parameters.
type InsightsRequest struct {
	Parameters mining.OperatingParameters `json:"parameters"`
	Projection mining.Projection          `json:"projection"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg, RequestID: RequestIDFromContext(r.Context())})
}

// writeAdvisorError maps engine errors onto status codes.
func writeAdvisorError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch service.ErrorKind(err) {
	case service.KindUnknownCoin:
		status = http.StatusNotFound
	case service.KindInvalidProjection, service.KindOutOfDomain:
		status = http.StatusUnprocessableEntity
	case service.KindCanceled:
		status = http.StatusServiceUnavailable
	}
	writeError(w, r, status, err.Error())
}

// decodeJSON reads a bounded JSON body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return fmt.Errorf("request body exceeds %d bytes", maxErr.Limit)
		case errors.Is(err, io.EOF):
			return errors.New("request body is empty")
		default:
			return fmt.Errorf("malformed JSON: %w", err)
		}
	}
	if dec.More() {
		return errors.New("request body must hold a single JSON object")
	}
	return nil
}

// decodeParameters overlays the request body on the configured defaults so
// omitted fields keep their dashboard values.
func (s *Server) decodeParameters(w http.ResponseWriter, r *http.Request) (mining.OperatingParameters, bool) {
	params := s.advisor.Defaults().Defaults
	if err := decodeJSON(w, r, &params); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return params, false
	}
	return params, true
}

func (s *Server) handleListCoins(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.advisor.Coins())
}

func (s *Server) handleGetCoin(w http.ResponseWriter, r *http.Request) {
	coin, err := s.advisor.Coin(r.PathValue("id"))
	if err != nil {
		writeAdvisorError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, coin)
}

func (s *Server) handleDefaults(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.advisor.Defaults())
}

func (s *Server) handleProjection(w http.ResponseWriter, r *http.Request) {
	params, ok := s.decodeParameters(w, r)
	if !ok {
		return
	}
	result, err := s.advisor.Project(r.Context(), RequestIDFromContext(r.Context()), params)
	if err != nil {
		writeAdvisorError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	req := InsightsRequest{Parameters: s.advisor.Defaults().Defaults}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	insight, err := s.advisor.Insights(r.Context(), RequestIDFromContext(r.Context()), req.Parameters, req.Projection)
	if err != nil {
		writeAdvisorError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, insight)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	params, ok := s.decodeParameters(w, r)
	if !ok {
		return
	}
	dashboard, err := s.advisor.Dashboard(r.Context(), RequestIDFromContext(r.Context()), params)
	if err != nil {
		writeAdvisorError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dashboard)
}
