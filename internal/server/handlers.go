package server

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/Veraticus/ledgercheck/internal/common"
	"github.com/Veraticus/ledgercheck/internal/model"
)

// ManualRequest is the body of POST /upload/manual. Profit defaults to
// revenue minus expenses when omitted.
type ManualRequest struct {
	Revenue  *float64 `json:"revenue"`
	Expenses *float64 `json:"expenses"`
	Profit   *float64 `json:"profit"`
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Financial Health Assessment API is running",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "File too large")
			return
		}
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer func() { _ = file.Close() }()

	result, err := s.svc.AnalyzeUpload(r.Context(), requesterFrom(r.Context()), header.Filename, file)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleManual(w http.ResponseWriter, r *http.Request) {
	var req ManualRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Revenue == nil || req.Expenses == nil {
		writeError(w, http.StatusBadRequest, "revenue and expenses are required")
		return
	}
	if *req.Revenue < 0 || *req.Expenses < 0 {
		writeError(w, http.StatusBadRequest, "revenue and expenses must not be negative")
		return
	}

	facts := model.NewFinancialFacts(*req.Revenue, *req.Expenses)
	if req.Profit != nil {
		facts.Profit = *req.Profit
	}

	result, err := s.svc.AnalyzeManual(r.Context(), requesterFrom(r.Context()), facts)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	entries, err := s.svc.History(r.Context(), requesterFrom(r.Context()))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleLatest(w http.ResponseWriter, r *http.Request) {
	raw, err := s.svc.Latest(r.Context(), requesterFrom(r.Context()))
	if errors.Is(err, common.ErrNotFound) {
		writeError(w, http.StatusNotFound, "No reports found")
		return
	}
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, raw)
}

// writeServiceError maps document faults to 400 and everything else to 500.
func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	if common.IsDocumentParseError(err) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.logger.Error("request failed", "error", err)
	writeError(w, http.StatusInternalServerError, "Internal server error")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
