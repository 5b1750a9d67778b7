package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Open connects with the named driver and applies the schema. It returns a
// nil handle for the memory driver.
func Open(driver, dsn string, timeout time.Duration) (*sql.DB, error) {
	var (
		conn *sql.DB
		err  error
	)
	switch driver {
	case "postgres":
		conn, err = Connect(dsn, timeout)
	case "sqlite":
		conn, err = ConnectSQLite(dsn, timeout)
	case "memory":
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := Migrate(ctx, conn, driver); err != nil {
		return nil, errors.Join(err, conn.Close())
	}
	return conn, nil
}

func Connect(dsn string, timeout time.Duration) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create database handle: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := ping(db, timeout); err != nil {
		return nil, err
	}
	return db, nil
}

// ConnectSQLite opens path with foreign keys enforced. A ":memory:" path
// yields a private database, so the pool is pinned to one connection.
func ConnectSQLite(path string, timeout time.Duration) (*sql.DB, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("sqlite path is required")
	}
	dsn := path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create sqlite handle: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := ping(db, timeout); err != nil {
		return nil, err
	}
	return db, nil
}

func ping(db *sql.DB, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		pingErr := fmt.Errorf("failed to ping database within %v: %w", timeout, err)
		if closeErr := db.Close(); closeErr != nil {
			return errors.Join(pingErr, fmt.Errorf("failed to close database handle: %w", closeErr))
		}
		return pingErr
	}
	return nil
}
