package postgres

import (
	"context"
	"log/slog"
	"time"

	"github.com/ErlanBelekov/task-manager-api/internal/metrics"
	"github.com/jackc/pgx/v5"
)

const maxLoggedSQL = 200

type queryStartKey struct{}

type queryStart struct {
	at  time.Time
	sql string
}

// SlowQueryTracer records every query's duration and logs the ones slower
// than threshold. It implements pgx.QueryTracer.
type SlowQueryTracer struct {
	logger    *slog.Logger
	threshold time.Duration
}

func NewSlowQueryTracer(logger *slog.Logger, threshold time.Duration) *SlowQueryTracer {
	if threshold <= 0 {
		threshold = 200 * time.Millisecond
	}
	return &SlowQueryTracer{logger: logger.With("component", "postgres"), threshold: threshold}
}

func (t *SlowQueryTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, queryStartKey{}, queryStart{at: time.Now(), sql: data.SQL})
}

func (t *SlowQueryTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	start, ok := ctx.Value(queryStartKey{}).(queryStart)
	if !ok {
		return
	}

	took := time.Since(start.at)
	metrics.DBQueryDuration.Observe(took.Seconds())

	if took < t.threshold {
		return
	}
	metrics.DBSlowQueriesTotal.Inc()

	sql := start.sql
	if len(sql) > maxLoggedSQL {
		sql = sql[:maxLoggedSQL] + "..."
	}
	t.logger.WarnContext(ctx, "slow query",
		"sql", sql,
		"took", took,
		"command_tag", data.CommandTag.String(),
		"error", data.Err,
	)
}
