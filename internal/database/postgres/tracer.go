package postgres

import (
	"context"
	"strings"
	"time"

	"jobni/internal/observability"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const maxStatementAttr = 256

// queryTracer opens a client span per statement and warns about statements
// slower than slow.
type queryTracer struct {
	slow time.Duration
}

type queryStartKey struct{}

type queryStart struct {
	sql  string
	at   time.Time
	span trace.Span
}

func (t queryTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	stmt := compactSQL(data.SQL)
	ctx, span := observability.StartSpan(ctx, "db.query",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "postgresql"),
			attribute.String("db.statement", stmt),
		),
	)
	return context.WithValue(ctx, queryStartKey{}, queryStart{sql: stmt, at: time.Now(), span: span})
}

func (t queryTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	st, ok := ctx.Value(queryStartKey{}).(queryStart)
	if !ok {
		return
	}
	observability.EndSpan(st.span, data.Err)

	if t.slow <= 0 {
		return
	}
	if elapsed := time.Since(st.at); elapsed >= t.slow {
		observability.LoggerFromContext(ctx).Warn().
			Str("component", "db").
			Dur("elapsed", elapsed).
			Str("sql", st.sql).
			Msg("slow query")
	}
}

func compactSQL(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) > maxStatementAttr {
		s = s[:maxStatementAttr]
	}
	return s
}
