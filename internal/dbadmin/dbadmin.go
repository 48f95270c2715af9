// Package dbadmin talks to the database server: an admin connection
// for existence checks and database creation (pgx), and subprocess
// drivers for the dump and restore binaries.
package dbadmin

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// ConnParams identify the database server for every collaborator.
type ConnParams struct {
	Host     string
	Port     int
	User     string
	Password string
}

// AdminDSN builds a DSN against the maintenance database, which always
// exists and is where CREATE DATABASE must run.
func AdminDSN(p ConnParams) string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(p.User, p.Password),
		Host:   fmt.Sprintf("%s:%d", p.Host, p.Port),
		Path:   "/postgres",
	}
	return u.String()
}

// Client wraps the admin connection.
type Client struct {
	db *sql.DB
}

// Open connects using the pgx stdlib driver.
func Open(p ConnParams) (*Client, error) {
	db, err := sql.Open("pgx", AdminDSN(p))
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	return &Client{db: db}, nil
}

func (c *Client) Close() error {
	return c.db.Close()
}

// DatabaseExists reports whether a database with the given name exists
// on the server. Read-only; safe in dry-run mode.
func (c *Client) DatabaseExists(ctx context.Context, name string) (bool, error) {
	var one int
	err := c.db.QueryRowContext(ctx, "SELECT 1 FROM pg_database WHERE datname = $1", name).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("existence check for %s: %w", name, err)
	}
	return true, nil
}

// CreateDatabase creates name from the empty template. Identifiers
// cannot be bound as parameters, so the name is quoted explicitly.
func (c *Client) CreateDatabase(ctx context.Context, name string) error {
	stmt := fmt.Sprintf("CREATE DATABASE %s TEMPLATE template0", QuoteIdent(name))
	if _, err := c.db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("create database %s: %w", name, err)
	}
	return nil
}

// QuoteIdent double-quotes a SQL identifier, doubling embedded quotes.
func QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
