// v1
// internal/api/handlers.go
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/timeisseler/ferienplanung/internal/holiday"
	"github.com/timeisseler/ferienplanung/internal/profile"
	"github.com/timeisseler/ferienplanung/internal/projector"
)

// Runner is the slice of the projector the handlers need; the indirection
// keeps handler tests free of real holiday sources.
type Runner interface {
	Project(ctx context.Context, frame *profile.Frame, region string, years []int) ([]projector.YearProjection, error)
}

// Handlers carries the HTTP handler dependencies.
type Handlers struct {
	logger      *slog.Logger
	runner      Runner
	profiles    *ProfileStore
	projections *ProjectionStore
	maxUpload   int64
}

// NewHandlers wires the handler set.
func NewHandlers(logger *slog.Logger, runner Runner, maxUpload int64) *Handlers {
	return &Handlers{
		logger:      logger,
		runner:      runner,
		profiles:    NewProfileStore(),
		projections: NewProjectionStore(),
		maxUpload:   maxUpload,
	}
}

type profileResponse struct {
	ID              string `json:"id"`
	SourceYear      int    `json:"sourceYear"`
	IntervalMinutes int    `json:"intervalMinutes"`
	IntervalsPerDay int    `json:"intervalsPerDay"`
	FullDays        int    `json:"fullDays"`
	PartialDays     int    `json:"partialDays"`
}

// handleUploadProfile accepts the raw source CSV in the request body.
func (h *Handlers) handleUploadProfile(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, h.maxUpload)
	intervals, err := profile.ParseCSV(body)
	if err != nil {
		h.writeError(w, uploadStatus(err), err)
		return
	}
	frame, err := profile.BuildFrame(intervals)
	if err != nil {
		h.writeError(w, uploadStatus(err), err)
		return
	}
	stored := h.profiles.Add(frame)
	h.logger.Info("profile_uploaded",
		slog.String("id", stored.ID.String()),
		slog.Int("source_year", frame.Year),
		slog.Int("full_days", frame.FullDays()),
		slog.Int("partial_days", frame.PartialDays()))
	h.writeJSON(w, http.StatusCreated, profileResponse{
		ID:              stored.ID.String(),
		SourceYear:      frame.Year,
		IntervalMinutes: int(frame.Step / time.Minute),
		IntervalsPerDay: frame.IntervalsPerDay,
		FullDays:        frame.FullDays(),
		PartialDays:     frame.PartialDays(),
	})
}

func uploadStatus(err error) int {
	switch {
	case errors.Is(err, profile.ErrInputRange),
		errors.Is(err, profile.ErrIrregularSampling),
		errors.Is(err, profile.ErrEmptyProfile):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}

type projectionRequest struct {
	State string `json:"state"`
	Years []int  `json:"years"`
}

type yearResult struct {
	Year         int            `json:"year"`
	Status       string         `json:"status"`
	ProjectionID string         `json:"projectionId,omitempty"`
	Intervals    int            `json:"intervals,omitempty"`
	MatchKinds   map[string]int `json:"matchKinds,omitempty"`
	Error        string         `json:"error,omitempty"`
}

type projectionResponse struct {
	ProfileID string       `json:"profileId"`
	State     string       `json:"state"`
	Results   []yearResult `json:"results"`
}

// handleCreateProjections runs the projector for the requested target years.
// Failed years are reported per slot; successful years become downloadable
// projection records.
func (h *Handlers) handleCreateProjections(w http.ResponseWriter, r *http.Request) {
	profileID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid profile id: %w", err))
		return
	}
	stored, ok := h.profiles.Get(profileID)
	if !ok {
		h.writeError(w, http.StatusNotFound, errors.New("profile not found"))
		return
	}

	var req projectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if len(req.Years) == 0 {
		h.writeError(w, http.StatusBadRequest, errors.New("years must not be empty"))
		return
	}
	region, err := holiday.ValidateRegion(req.State)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	projections, err := h.runner.Project(r.Context(), stored.Frame, region, req.Years)
	if err != nil {
		h.writeError(w, http.StatusBadGateway, err)
		return
	}

	resp := projectionResponse{ProfileID: profileID.String(), State: region}
	for _, yp := range projections {
		if yp.Err != nil {
			resp.Results = append(resp.Results, yearResult{
				Year:   yp.Year,
				Status: "failed",
				Error:  yp.Err.Error(),
			})
			continue
		}
		rec := &ProjectionRecord{
			ProfileID: profileID,
			Region:    region,
			Year:      yp.Year,
			Profile:   yp.Profile,
			Matches:   yp.Matches,
		}
		h.projections.Add(rec)
		resp.Results = append(resp.Results, yearResult{
			Year:         yp.Year,
			Status:       "ok",
			ProjectionID: rec.ID.String(),
			Intervals:    len(yp.Profile.Intervals),
			MatchKinds:   countKinds(rec),
		})
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func countKinds(rec *ProjectionRecord) map[string]int {
	out := make(map[string]int)
	for _, m := range rec.Matches {
		out[m.Kind.String()]++
	}
	return out
}

type projectionMeta struct {
	ID         string         `json:"id"`
	ProfileID  string         `json:"profileId"`
	State      string         `json:"state"`
	Year       int            `json:"year"`
	Intervals  int            `json:"intervals"`
	MatchKinds map[string]int `json:"matchKinds"`
	CreatedAt  time.Time      `json:"createdAt"`
}

func (h *Handlers) handleGetProjection(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.lookupProjection(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, projectionMeta{
		ID:         rec.ID.String(),
		ProfileID:  rec.ProfileID.String(),
		State:      rec.Region,
		Year:       rec.Year,
		Intervals:  len(rec.Profile.Intervals),
		MatchKinds: countKinds(rec),
		CreatedAt:  rec.CreatedAt,
	})
}

func (h *Handlers) handleDownloadProjection(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.lookupProjection(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="lastprofil_%s_%d.csv"`, rec.Region, rec.Year))
	if err := profile.WriteCSV(w, rec.Profile); err != nil {
		h.logger.Error("projection_csv_write_failed",
			slog.String("id", rec.ID.String()),
			slog.Any("err", err))
	}
}

func (h *Handlers) lookupProjection(w http.ResponseWriter, r *http.Request) (*ProjectionRecord, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid projection id: %w", err))
		return nil, false
	}
	rec, ok := h.projections.Get(id)
	if !ok {
		h.writeError(w, http.StatusNotFound, errors.New("projection not found"))
		return nil, false
	}
	return rec, true
}

func (h *Handlers) handleStates(w http.ResponseWriter, _ *http.Request) {
	type state struct {
		Code string `json:"code"`
		Name string `json:"name"`
	}
	codes := holiday.States()
	out := make([]state, 0, len(codes))
	for _, code := range codes {
		name, _ := holiday.StateName(code)
		out = append(out, state{Code: code, Name: name})
	}
	h.writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("write_response_failed", slog.Any("err", err))
	}
}

func (h *Handlers) writeError(w http.ResponseWriter, status int, err error) {
	h.writeJSON(w, status, map[string]string{"error": err.Error()})
}
