package forestdb

import (
	"context"
	"database/sql"
	"time"

	gopsqldb "github.com/gopsql/db"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Database executes SQL statements and returns the rows they produce.
// Statements that return no rows yield an empty slice.
type Database interface {
	Query(ctx context.Context, query string, args ...interface{}) ([]Row, error)
	Close() error
}

// Pool is a Database backed by a database/sql connection pool using the
// pgx stdlib driver.
type Pool struct {
	db *sql.DB
}

var _ Database = (*Pool)(nil)

// Open connects to the Postgres server described by cfg and verifies the
// connection with a ping.
func Open(cfg Config) (*Pool, error) {
	db, err := sql.Open("pgx", cfg.DSN())
	if err != nil {
		return nil, err
	}
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)
	}
	pool := &Pool{db: db}
	if err := pool.Ping(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return pool, nil
}

// NewDatabase wraps an existing database/sql handle. The caller keeps
// ownership of pool settings.
func NewDatabase(db *sql.DB) *Pool {
	return &Pool{db: db}
}

func (p *Pool) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

func (p *Pool) Query(ctx context.Context, query string, args ...interface{}) ([]Row, error) {
	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	var out []Row
	for rows.Next() {
		values := make([]interface{}, len(columns))
		dest := make([]interface{}, len(columns))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		row := make(Row, len(columns))
		for i, name := range columns {
			row[name] = values[i]
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *Pool) Close() error {
	return p.db.Close()
}

// Gopsql adapts a gopsql/db connection to the Database interface, for
// callers already holding one of those.
type Gopsql struct {
	db gopsqldb.DB
}

var _ Database = (*Gopsql)(nil)

func NewGopsql(db gopsqldb.DB) *Gopsql {
	return &Gopsql{db: db}
}

func (g *Gopsql) Query(ctx context.Context, query string, args ...interface{}) ([]Row, error) {
	rows, err := g.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	var out []Row
	for rows.Next() {
		values := make([]interface{}, len(columns))
		dest := make([]interface{}, len(columns))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		row := make(Row, len(columns))
		for i, name := range columns {
			row[name] = values[i]
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Close is a no-op; the underlying gopsql connection is owned by whoever
// created it.
func (g *Gopsql) Close() error {
	return nil
}
