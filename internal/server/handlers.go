package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/laneplot/pkg/errors"
	"github.com/matzehuels/laneplot/pkg/pipeline"
	"github.com/matzehuels/laneplot/pkg/render/gantt/sink"
	"github.com/matzehuels/laneplot/pkg/schedule"
	"github.com/matzehuels/laneplot/pkg/store"
)

// chartRequest is the body of POST /v1/layout and POST /v1/charts.
type chartRequest struct {
	Tasks   schedule.Schedule `json:"tasks"`
	Options pipeline.Options  `json:"options"`
}

type chartSummary struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	ScheduleHash string    `json:"schedule_hash"`
	Title        string    `json:"title,omitempty"`
	TaskCount    int       `json:"task_count"`
}

func summarize(c *store.Chart) chartSummary {
	return chartSummary{
		ID:           c.ID,
		CreatedAt:    c.CreatedAt,
		ScheduleHash: c.ScheduleHash,
		Title:        c.Options.Title,
		TaskCount:    len(c.Schedule),
	}
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	req, err := decodeChartRequest(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeLayout(w, r, req.Tasks, req.Options)
}

func (s *Server) handleCreateChart(w http.ResponseWriter, r *http.Request) {
	req, err := decodeChartRequest(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	// Reject charts that cannot be laid out before storing them.
	if _, err := s.runner.Layout(r.Context(), req.Tasks, req.Options); err != nil {
		s.writeError(w, r, err)
		return
	}

	c, err := store.NewChart(req.Tasks, req.Options)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.store.Save(r.Context(), c); err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Location", "/v1/charts/"+c.ID)
	writeJSON(w, http.StatusCreated, summarize(c))
}

func (s *Server) handleListCharts(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "invalid limit: %q", v))
			return
		}
		limit = n
	}

	charts, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out := make([]chartSummary, len(charts))
	for i, c := range charts {
		out[i] = summarize(c)
	}
	writeJSON(w, http.StatusOK, map[string]any{"charts": out})
}

// handleGetChart serves /v1/charts/{id} and /v1/charts/{id}.{ext}.
func (s *Server) handleGetChart(w http.ResponseWriter, r *http.Request) {
	id, ext, _ := strings.Cut(chi.URLParam(r, "ref"), ".")

	c, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if ext == "" {
		s.writeLayout(w, r, c.Schedule, c.Options)
		return
	}

	format, ok := formatForExtension(ext)
	if !ok {
		s.writeError(w, r, errors.New(errors.ErrCodeNotFound, "unknown artifact %q", ext))
		return
	}
	opts := c.Options
	opts.Formats = []string{format}
	if v := r.URL.Query().Get("scale"); v != "" {
		scale, err := strconv.Atoi(v)
		if err != nil {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "invalid scale: %q", v))
			return
		}
		opts.Scale = scale
	}

	res, err := s.runner.Execute(r.Context(), c.Schedule, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", pipeline.ContentType(format))
	w.Header().Set("X-Cache", cacheStatus(res.CacheInfo.RenderHit))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

func (s *Server) handleDeleteChart(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "ref")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeLayout(w http.ResponseWriter, r *http.Request, sch schedule.Schedule, opts pipeline.Options) {
	l, hit, err := s.runner.LayoutWithCacheInfo(r.Context(), sch, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	data, err := sink.RenderJSON(l)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "encode layout"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Cache", cacheStatus(hit))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func decodeChartRequest(w http.ResponseWriter, r *http.Request) (chartRequest, error) {
	var req chartRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return req, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode request body")
	}
	return req, nil
}

func formatForExtension(ext string) (string, bool) {
	for _, f := range pipeline.FormatNames {
		if pipeline.Extension(f) == ext {
			return f, true
		}
	}
	return "", false
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}
