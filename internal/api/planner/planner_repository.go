package planner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	appmetrics "github.com/Abhishek-Jose7/hangout-sub000/app/observability/metrics"
	"github.com/Abhishek-Jose7/hangout-sub000/internal/types"
)

var _ Repository = (*PostgresPlanLogRepo)(nil)

// Repository persists planning-request outcomes. Callers treat persistence
// as best-effort.
type Repository interface {
	SavePlanLog(ctx context.Context, logEntry types.PlanLog) error
	GetRecentPlanLogs(ctx context.Context, limit int) ([]types.PlanLog, error)
}

// PgxPool is the slice of pgxpool.Pool this repository needs.
type PgxPool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type PostgresPlanLogRepo struct {
	logger  *slog.Logger
	pgpool  PgxPool
	metrics *appmetrics.AppMetrics
}

func NewPostgresPlanLogRepo(pgxpool PgxPool, m *appmetrics.AppMetrics, logger *slog.Logger) *PostgresPlanLogRepo {
	return &PostgresPlanLogRepo{
		logger:  logger,
		pgpool:  pgxpool,
		metrics: m,
	}
}

// observeQuery records duration for every query and counts the failures.
func (r *PostgresPlanLogRepo) observeQuery(ctx context.Context, name string, start time.Time, queryErr error) {
	if r.metrics == nil {
		return
	}
	queryAttr := metric.WithAttributes(attribute.String("query", name))
	r.metrics.DbQueryDurationSeconds.Record(ctx, time.Since(start).Seconds(), queryAttr)
	if queryErr != nil {
		r.metrics.DbQueryErrorsTotal.Add(ctx, 1, queryAttr)
	}
}

func (r *PostgresPlanLogRepo) SavePlanLog(ctx context.Context, logEntry types.PlanLog) error {
	query := `
        INSERT INTO plan_logs (
            id, member_count, mood_tags, tier, itinerary_count, latency_ms, response_text
        ) VALUES ($1, $2, $3, $4, $5, $6, $7)
    `
	start := time.Now()
	_, err := r.pgpool.Exec(ctx, query,
		logEntry.ID, logEntry.MemberCount, logEntry.MoodTags, string(logEntry.Tier),
		logEntry.ItineraryCount, logEntry.LatencyMs, logEntry.ResponseText,
	)
	r.observeQuery(ctx, "save_plan_log", start, err)
	if err != nil {
		return fmt.Errorf("failed to save plan log: %w", err)
	}
	return nil
}

func (r *PostgresPlanLogRepo) GetRecentPlanLogs(ctx context.Context, limit int) ([]types.PlanLog, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
        SELECT id, member_count, mood_tags, tier, itinerary_count, latency_ms, response_text, created_at
        FROM plan_logs
        ORDER BY created_at DESC
        LIMIT $1
    `
	start := time.Now()
	rows, err := r.pgpool.Query(ctx, query, limit)
	r.observeQuery(ctx, "get_recent_plan_logs", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to query plan logs: %w", err)
	}
	defer rows.Close()

	var logs []types.PlanLog
	for rows.Next() {
		var l types.PlanLog
		var tier string
		if err := rows.Scan(&l.ID, &l.MemberCount, &l.MoodTags, &tier,
			&l.ItineraryCount, &l.LatencyMs, &l.ResponseText, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan plan log row: %w", err)
		}
		l.Tier = types.PlanTier(tier)
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating plan log rows: %w", err)
	}
	return logs, nil
}
