package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kitbuilder587/boolsearch/internal/domain"
	"github.com/kitbuilder587/boolsearch/internal/export"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	csvContentType  = "text/csv; charset=utf-8"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:          "ok",
		Message:         healthMessage,
		HasAPIKey:       s.health.HasAPIKey,
		HasAlternateKey: s.health.HasAlternateKey,
		Storage:         s.health.Storage,
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Richiesta non valida")
		return
	}

	in := domain.SearchRequest{Domain: req.Domain, Query: req.Query}
	res, err := s.search.Search(r.Context(), &in)
	if err != nil {
		status, msg := mapError(err)
		writeError(w, status, msg)
		return
	}

	writeJSON(w, searchStatus(res), toSearchResponse(res))
}

func (s *Server) handleCreateRun(w http.ResponseWriter, r *http.Request) {
	var req runRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Richiesta non valida")
		return
	}

	run, err := s.runs.Start(r.Context(), &domain.RunRequest{
		Project:  req.Project,
		Domains:  req.Domains,
		Articles: req.Articles,
	})
	if err != nil {
		s.writeMappedError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toRunResponse(run))
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.RunFilter{
		Project: q.Get("project"),
		Limit:   atoiOrZero(q.Get("limit")),
		Offset:  atoiOrZero(q.Get("offset")),
	}
	filter.Sanitize()

	runs, total, err := s.runs.List(r.Context(), filter)
	if err != nil {
		s.writeMappedError(w, err)
		return
	}

	out := runListResponse{
		Runs:   make([]runSummary, 0, len(runs)),
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}
	for _, run := range runs {
		out.Runs = append(out.Runs, runSummary{
			ID:        run.ID,
			Project:   run.Project,
			CreatedAt: run.CreatedAt,
			Stats:     toRunStats(run.Stats),
		})
	}

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	run, err := s.runs.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeMappedError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRunResponse(run))
}

func (s *Server) handleExportRun(w http.ResponseWriter, r *http.Request) {
	s.exportRun(w, r, xlsxContentType, export.FileName, export.WriteXLSX)
}

func (s *Server) handleExportRunCSV(w http.ResponseWriter, r *http.Request) {
	s.exportRun(w, r, csvContentType, export.CSVFileName, export.WriteCSV)
}

func (s *Server) exportRun(
	w http.ResponseWriter,
	r *http.Request,
	contentType string,
	fileName func(*domain.Run) string,
	write func(io.Writer, []domain.RunItem) error,
) {
	run, err := s.runs.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeMappedError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+fileName(run)+`"`)

	if err := write(w, run.Items); err != nil {
		// заголовки уже ушли, остается только лог
		s.logger.Error("export failed",
			zap.String("run_id", run.ID),
			zap.String("content_type", contentType),
			zap.Error(err),
		)
	}
}

func (s *Server) writeMappedError(w http.ResponseWriter, err error) {
	status, msg := mapError(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", zap.Error(err))
	}
	writeError(w, status, msg)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	return json.NewDecoder(r.Body).Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
