// Package store keeps the console's users, properties and pickups in an
// in-memory DuckDB database seeded from a fixture file.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/marcboeker/go-duckdb" // Register DuckDB driver
)

// Client manages the connection to an embedded DuckDB database.
type Client struct {
	db      *sql.DB
	threads int
	timeout time.Duration
}

// Option configures the DuckDB client.
type Option func(*Client)

// WithThreads sets the number of DuckDB threads.
func WithThreads(n int) Option {
	return func(c *Client) {
		c.threads = n
	}
}

// WithTimeout bounds the connectivity check and every repo query.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// NewClient opens an in-memory DuckDB database.
func NewClient(opts ...Option) (*Client, error) {
	return openClient(":memory:", opts...)
}

func openClient(dsn string, opts ...Option) (*Client, error) {
	client := &Client{}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	db, err := sql.Open("duckdb", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open duckdb: %w", err)
	}

	ctx, cancel := client.context(context.Background())
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping duckdb: %w", err)
	}

	// DuckDB is embedded; serial access keeps the fixture load and profile writes ordered.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if client.threads > 0 {
		if _, err := db.Exec(fmt.Sprintf("PRAGMA threads=%d", client.threads)); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("setting threads: %w", err)
		}
	}

	client.db = db
	return client, nil
}

// DB returns the underlying sql.DB instance.
func (c *Client) DB() *sql.DB {
	return c.db
}

// Timeout is the per-query timeout, zero when unbounded.
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// Ping verifies database connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if c.db == nil {
		return fmt.Errorf("database not initialized")
	}
	return c.db.PingContext(ctx)
}

// Close releases database resources.
func (c *Client) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

func (c *Client) context(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout > 0 {
		return context.WithTimeout(ctx, c.timeout)
	}
	return context.WithCancel(ctx)
}
