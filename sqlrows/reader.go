package sqlrows

import (
	"context"
	"database/sql"
	"iter"

	sq "github.com/Masterminds/squirrel"
	"go.uber.org/zap"

	"github.com/longlodw/rowfold/internal/logger"
	"github.com/longlodw/rowfold/record"
)

// DefaultSplitOn is the column name that starts every entity after the first.
const DefaultSplitOn = "Id"

// Querier runs a query. *sql.DB, *sql.Tx and *sql.Conn all satisfy it, so
// passing a transaction runs the query inside it.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Config defines how a Reader splits and runs queries.
type Config struct {
	SplitOn     string
	Placeholder sq.PlaceholderFormat
	Logger      logger.Logger
}

// Option defines a function type used for configuring a Config object.
type Option func(*Config)

// WithSplitOn sets the comma separated split marker columns.
func WithSplitOn(splitOn string) Option {
	return func(cfg *Config) {
		cfg.SplitOn = splitOn
	}
}

// WithPlaceholderFormat sets how '?' placeholders are rewritten before a
// query is sent, e.g. sq.Dollar for PostgreSQL.
func WithPlaceholderFormat(f sq.PlaceholderFormat) Option {
	return func(cfg *Config) {
		cfg.Placeholder = f
	}
}

// WithLogger returns an Option that sets the Logger in the Config.
func WithLogger(l logger.Logger) Option {
	return func(cfg *Config) {
		cfg.Logger = l
	}
}

// NewConfig creates a new Config instance with default values
// and applies any provided Option modifications.
func NewConfig(opts ...Option) *Config {
	cfg := &Config{}

	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.SplitOn == "" {
		cfg.SplitOn = DefaultSplitOn
	}

	if cfg.Placeholder == nil {
		cfg.Placeholder = sq.Question
	}

	if cfg.Logger == nil {
		cfg.Logger = logger.NewNoopLogger()
	}

	return cfg
}

// Reader turns query results into segmented rows: one record.Row per entity.
type Reader struct {
	q   Querier
	cfg *Config
}

func NewReader(q Querier, opts ...Option) *Reader {
	return &Reader{
		q:   q,
		cfg: NewConfig(opts...),
	}
}

// SQL wraps a raw query and its arguments as a statement.
func SQL(query string, args ...any) sq.Sqlizer {
	return sq.Expr(query, args...)
}

// Rows runs stmt and yields every result row split into arity segments.
// The query starts when iteration starts; breaking out of the loop closes the
// result set. The first error ends the stream and is yielded as is.
func (r *Reader) Rows(ctx context.Context, stmt sq.Sqlizer, arity int) iter.Seq2[[]record.Row, error] {
	return func(yield func([]record.Row, error) bool) {
		query, args, err := stmt.ToSql()
		if err != nil {
			yield(nil, err)
			return
		}
		query, err = r.cfg.Placeholder.ReplacePlaceholders(query)
		if err != nil {
			yield(nil, err)
			return
		}

		r.cfg.Logger.DebugWithContext(ctx, "running query",
			zap.String("query", query),
			zap.Int("args", len(args)),
			zap.Int("arity", arity),
		)

		rows, err := r.q.QueryContext(ctx, query, args...)
		if err != nil {
			yield(nil, err)
			return
		}
		defer rows.Close()

		columns, err := rows.Columns()
		if err != nil {
			yield(nil, err)
			return
		}
		bounds, err := splitColumns(columns, r.cfg.SplitOn, arity)
		if err != nil {
			r.cfg.Logger.DebugWithContext(ctx, "cannot split result columns",
				zap.Strings("columns", columns),
				zap.String("split_on", r.cfg.SplitOn),
				zap.Error(err),
			)
			yield(nil, err)
			return
		}

		count := 0
		for rows.Next() {
			values := make([]any, len(columns))
			dest := make([]any, len(columns))
			for i := range values {
				dest[i] = &values[i]
			}
			if err := rows.Scan(dest...); err != nil {
				yield(nil, err)
				return
			}
			segments := make([]record.Row, arity)
			for i := range arity {
				lo, hi := bounds[i], bounds[i+1]
				segments[i] = record.NewSegment(columns[lo:hi], values[lo:hi])
			}
			count++
			if !yield(segments, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(nil, err)
			return
		}
		r.cfg.Logger.DebugWithContext(ctx, "query drained", zap.Int("rows", count))
	}
}
