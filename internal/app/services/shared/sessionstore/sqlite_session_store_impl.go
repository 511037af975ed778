package sessionstore

import (
	"context"
	"database/sql"
	"medportal-service/internal/app/contracts"
	"medportal-service/internal/pkg/exceptions"
	"strings"
	"time"
)

type sqliteSessionStore struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

func NewSQLiteSessionStore(ctx context.Context, db *sql.DB, ttl time.Duration) (contracts.SessionStore, error) {
	store := &sqliteSessionStore{
		db:  db,
		ttl: ttl,
		now: time.Now,
	}
	if err := store.initSchema(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *sqliteSessionStore) initSchema(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS session_fields (
		namespace TEXT NOT NULL,
		key TEXT NOT NULL,
		value TEXT NOT NULL,
		updated_at INTEGER NOT NULL,
		PRIMARY KEY (namespace, key)
	);
	CREATE INDEX IF NOT EXISTS idx_session_fields_updated ON session_fields(updated_at);
	`
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return exceptions.ErrSQLiteOperation(err, "create schema for")
	}
	return nil
}

func (s *sqliteSessionStore) Load(ctx context.Context, namespace string) (map[string]string, error) {
	query := `SELECT key, value FROM session_fields WHERE namespace = ? AND updated_at >= ?`
	rows, err := s.db.QueryContext(ctx, query, namespace, s.oldestValid())
	if err != nil {
		return nil, exceptions.ErrSQLiteOperation(err, "load")
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, exceptions.ErrSQLiteOperation(err, "scan")
		}
		values[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrSQLiteOperation(err, "iterate")
	}
	return filterKnown(values), nil
}

// Set upserts the field and refreshes every field of the namespace, so the
// whole session expires together.
func (s *sqliteSessionStore) Set(ctx context.Context, namespace, key, value string) error {
	if err := validateKeys(key); err != nil {
		return err
	}

	now := s.now().Unix()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return exceptions.ErrSQLiteOperation(err, "begin write of")
	}
	defer tx.Rollback()

	upsert := `
	INSERT INTO session_fields (namespace, key, value, updated_at)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(namespace, key) DO UPDATE SET
		value = excluded.value,
		updated_at = excluded.updated_at`
	if _, err := tx.ExecContext(ctx, upsert, namespace, key, value, now); err != nil {
		return exceptions.ErrSQLiteOperation(err, "write")
	}

	touch := `UPDATE session_fields SET updated_at = ? WHERE namespace = ?`
	if _, err := tx.ExecContext(ctx, touch, now, namespace); err != nil {
		return exceptions.ErrSQLiteOperation(err, "touch")
	}

	if err := tx.Commit(); err != nil {
		return exceptions.ErrSQLiteOperation(err, "commit write of")
	}
	return nil
}

func (s *sqliteSessionStore) Delete(ctx context.Context, namespace string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := validateKeys(keys...); err != nil {
		return err
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(keys)), ",")
	args := make([]interface{}, 0, len(keys)+1)
	args = append(args, namespace)
	for _, key := range keys {
		args = append(args, key)
	}

	query := `DELETE FROM session_fields WHERE namespace = ? AND key IN (` + placeholders + `)`
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return exceptions.ErrSQLiteOperation(err, "delete")
	}
	return nil
}

func (s *sqliteSessionStore) Clear(ctx context.Context, namespace string) error {
	query := `DELETE FROM session_fields WHERE namespace = ?`
	if _, err := s.db.ExecContext(ctx, query, namespace); err != nil {
		return exceptions.ErrSQLiteOperation(err, "clear")
	}
	return nil
}

func (s *sqliteSessionStore) oldestValid() int64 {
	if s.ttl <= 0 {
		return 0
	}
	return s.now().Add(-s.ttl).Unix()
}
