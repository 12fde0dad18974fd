// Package history persists retrieved messages into a SQLite database so
// past conversations can be inspected without refetching them.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// Store wraps a SQLite database holding one row per (peer, message id).
type Store struct {
	db *sql.DB
}

const schema = `
create table if not exists messages (
	peer_id   integer not null,
	id        integer not null,
	from_id   integer not null,
	date      integer not null,
	message   text    not null,
	primary key (peer_id, id)
);
`

// Open creates or opens the database at path, creating the parent directory
// and the schema when missing.
func Open(path string) (*Store, error) {
	if err := ensureParentDir(path); err != nil {
		return nil, err
	}

	// per-connection PRAGMAs go on the DSN so every pooled connection gets them
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	dsn := path + sep + "_pragma=foreign_keys(1)&_pragma=synchronous(normal)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Record is one stored message.
type Record struct {
	ID      int32
	FromID  int64
	Date    int32
	Message string
}

// SaveMessages inserts or replaces the given messages under peerID.
func (s *Store) SaveMessages(peerID int64, messages []Record) error {
	if len(messages) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare(
		"insert or replace into messages (peer_id, id, from_id, date, message) values (?, ?, ?, ?, ?)")
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, m := range messages {
		if _, err := stmt.Exec(peerID, m.ID, m.FromID, m.Date, m.Message); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// MessagesByPeer returns up to limit stored messages for peerID, newest
// first.
func (s *Store) MessagesByPeer(peerID int64, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.Query(
		"select id, from_id, date, message from messages where peer_id = ? order by id desc limit ?",
		peerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.FromID, &r.Date, &r.Message); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) Close() error {
	return s.db.Close()
}

func ensureParentDir(path string) error {
	parent := filepath.Dir(path)
	if parent == "" || parent == "." {
		return nil
	}
	return os.MkdirAll(parent, 0o755)
}
