package planner

import (
	"log/slog"
	"net/http"
	"strconv"

	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/Abhishek-Jose7/hangout-sub000/internal/api"
	"github.com/Abhishek-Jose7/hangout-sub000/internal/types"
)

type HandlerImpl struct {
	plannerService Service
	planLogRepo    Repository
	logger         *slog.Logger
}

func NewHandlerImpl(plannerService Service, planLogRepo Repository, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		plannerService: plannerService,
		planLogRepo:    planLogRepo,
		logger:         logger,
	}
}

// PlanRequest is the expected JSON body for a planning request.
type PlanRequest struct {
	Members    []types.MemberPreferences `json:"members"`
	IsRomantic bool                      `json:"is_romantic"`
}

// PlanLocations handles POST /plan: resolves a meeting point and returns
// 1-3 itineraries. "No data found" conditions never surface as errors here;
// only malformed requests do.
func (h *HandlerImpl) PlanLocations(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("PlannerHandler").Start(r.Context(), "PlanLocations", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/plan"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "PlanLocations"))

	var req PlanRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.ErrorContext(ctx, "Failed to decode request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if len(req.Members) == 0 {
		api.ErrorResponse(w, r, http.StatusBadRequest, "At least one member is required")
		return
	}
	for _, m := range req.Members {
		if m.Location.Address == "" {
			api.ErrorResponse(w, r, http.StatusBadRequest, "Every member needs a location address")
			return
		}
		if m.Budget < 0 {
			api.ErrorResponse(w, r, http.StatusBadRequest, "Budget must not be negative")
			return
		}
	}

	result, err := h.plannerService.PlanLocations(ctx, req.Members, req.IsRomantic)
	if err != nil {
		l.ErrorContext(ctx, "Planning failed", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to plan locations")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, result)
}

// GetRecentPlans handles GET /plans/recent?limit=N for operational
// inspection of the plan log.
func (h *HandlerImpl) GetRecentPlans(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("PlannerHandler").Start(r.Context(), "GetRecentPlans", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/plans/recent"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "GetRecentPlans"))

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			api.ErrorResponse(w, r, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	logs, err := h.planLogRepo.GetRecentPlanLogs(ctx, limit)
	if err != nil {
		l.ErrorContext(ctx, "Failed to fetch recent plan logs", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to fetch recent plans")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, logs)
}
