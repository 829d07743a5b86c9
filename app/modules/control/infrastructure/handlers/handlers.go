package controlhandlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Black-And-White-Club/frolf-broadcast/app/modules/coordinator"
	leaderboarddomain "github.com/Black-And-White-Club/frolf-broadcast/app/modules/leaderboard/domain"
	playerdomain "github.com/Black-And-White-Club/frolf-broadcast/app/modules/player/domain"
	"github.com/Black-And-White-Club/frolf-broadcast/app/shared"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Controller is the coordinator surface exposed to operators.
type Controller interface {
	Status() coordinator.Status
	SetFocus(ctx context.Context, index int) error
	SetThrows(ctx context.Context, throws int) error
	IncreaseScore(ctx context.Context) (playerdomain.HoleResult, error)
	RevertScore(ctx context.Context) error
	ResetScores(ctx context.Context) error
	SetGroup(ctx context.Context, groupID string) error
	AddToQueue(ctx context.Context, playerID string, hole, throws *int) error
	NextQueued(ctx context.Context) (string, error)
	SetFeaturedHole(ctx context.Context, hole int) error
	ShowLeaderboard(ctx context.Context, divisionID string, skip int) error
	Leaderboard(divisionID string) ([]leaderboarddomain.LeaderboardPlayer, error)
}

// Handlers serves the operator control surface.
type Handlers struct {
	controller Controller
	logger     *slog.Logger
	tracer     trace.Tracer
}

// NewHandlers creates the control handlers.
func NewHandlers(controller Controller, logger *slog.Logger, tracer trace.Tracer) *Handlers {
	return &Handlers{
		controller: controller,
		logger:     logger,
		tracer:     tracer,
	}
}

// QueueRequest is the body of POST /queue.
type QueueRequest struct {
	PlayerID string `json:"player_id"`
	Hole     *int   `json:"hole,omitempty"`
	Throws   *int   `json:"throws,omitempty"`
}

// ScoreResponse describes the hole committed by POST /score/increase.
type ScoreResponse struct {
	Hole           int    `json:"hole"`
	Throws         int    `json:"throws"`
	Par            int    `json:"par"`
	Classification string `json:"classification"`
}

// StandingResponse is one row of GET /leaderboard/{division}.
type StandingResponse struct {
	Position   string `json:"position"`
	PlayerID   string `json:"player_id"`
	Name       string `json:"name"`
	TotalScore int    `json:"total_score"`
	RoundScore int    `json:"round_score"`
	Thru       int    `json:"thru"`
}

func (h *Handlers) HandleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.controller.Status())
}

func (h *Handlers) HandleSetFocus(w http.ResponseWriter, r *http.Request) {
	index, ok := h.intParam(w, r, "index")
	if !ok {
		return
	}
	h.run(w, r, "SetFocus", false, func(ctx context.Context) error {
		return h.controller.SetFocus(ctx, index)
	})
}

func (h *Handlers) HandleSetThrows(w http.ResponseWriter, r *http.Request) {
	throws, ok := h.intParam(w, r, "throws")
	if !ok {
		return
	}
	h.run(w, r, "SetThrows", false, func(ctx context.Context) error {
		return h.controller.SetThrows(ctx, throws)
	})
}

func (h *Handlers) HandleIncreaseScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ControlHandlers.HandleIncreaseScore")
	defer span.End()

	res, err := h.controller.IncreaseScore(ctx)
	if err != nil {
		h.writeError(ctx, w, "IncreaseScore", err, false)
		return
	}
	writeJSON(w, http.StatusOK, ScoreResponse{
		Hole:           res.Hole,
		Throws:         res.Throws,
		Par:            res.Par,
		Classification: res.Classification().String(),
	})
}

func (h *Handlers) HandleRevertScore(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, "RevertScore", false, h.controller.RevertScore)
}

func (h *Handlers) HandleResetScores(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, "ResetScores", false, h.controller.ResetScores)
}

func (h *Handlers) HandleSetGroup(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "id")
	h.run(w, r, "SetGroup", true, func(ctx context.Context) error {
		return h.controller.SetGroup(ctx, groupID)
	})
}

func (h *Handlers) HandleAddToQueue(w http.ResponseWriter, r *http.Request) {
	var req QueueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.PlayerID == "" {
		http.Error(w, "player_id is required", http.StatusBadRequest)
		return
	}
	h.run(w, r, "AddToQueue", true, func(ctx context.Context) error {
		return h.controller.AddToQueue(ctx, req.PlayerID, req.Hole, req.Throws)
	})
}

func (h *Handlers) HandleNextQueued(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ControlHandlers.HandleNextQueued")
	defer span.End()

	id, err := h.controller.NextQueued(ctx)
	if err != nil {
		h.writeError(ctx, w, "NextQueued", err, false)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"player_id": id})
}

func (h *Handlers) HandleSetFeaturedHole(w http.ResponseWriter, r *http.Request) {
	hole, ok := h.intParam(w, r, "hole")
	if !ok {
		return
	}
	h.run(w, r, "SetFeaturedHole", false, func(ctx context.Context) error {
		return h.controller.SetFeaturedHole(ctx, hole)
	})
}

func (h *Handlers) HandleShowLeaderboard(w http.ResponseWriter, r *http.Request) {
	division := chi.URLParam(r, "division")
	skip := 0
	if v := r.URL.Query().Get("skip"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "skip must be an integer", http.StatusBadRequest)
			return
		}
		skip = n
	}
	h.run(w, r, "ShowLeaderboard", true, func(ctx context.Context) error {
		return h.controller.ShowLeaderboard(ctx, division, skip)
	})
}

func (h *Handlers) HandleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ranked, err := h.controller.Leaderboard(chi.URLParam(r, "division"))
	if err != nil {
		h.writeError(r.Context(), w, "Leaderboard", err, true)
		return
	}
	out := make([]StandingResponse, len(ranked))
	for i, p := range ranked {
		out[i] = StandingResponse{
			Position:   p.PositionText(),
			PlayerID:   p.PlayerID,
			Name:       p.Name,
			TotalScore: p.TotalScore,
			RoundScore: p.RoundScore,
			Thru:       p.Thru,
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// run executes an operation without a response body and replies with the new status.
func (h *Handlers) run(w http.ResponseWriter, r *http.Request, operation string, lookup bool, op func(ctx context.Context) error) {
	ctx, span := h.tracer.Start(r.Context(), "ControlHandlers.Handle"+operation, trace.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("operation_id", OperationID(r.Context())),
	))
	defer span.End()

	if err := op(ctx); err != nil {
		h.writeError(ctx, w, operation, err, lookup)
		return
	}
	writeJSON(w, http.StatusOK, h.controller.Status())
}

func (h *Handlers) intParam(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	n, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		http.Error(w, name+" must be an integer", http.StatusBadRequest)
		return 0, false
	}
	return n, true
}

// StatusFor maps an operation error to an HTTP status. lookup marks operations
// whose data errors mean an unknown id.
func StatusFor(err error, lookup bool) int {
	switch {
	case errors.Is(err, shared.ErrIndex):
		return http.StatusBadRequest
	case errors.Is(err, shared.ErrData) && lookup:
		return http.StatusNotFound
	case errors.Is(err, shared.ErrData):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handlers) writeError(ctx context.Context, w http.ResponseWriter, operation string, err error, lookup bool) {
	status := StatusFor(err, lookup)
	if status == http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, "Control request failed",
			slog.String("operation", operation),
			slog.String("operation_id", OperationID(ctx)),
			slog.Any("error", err),
		)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
