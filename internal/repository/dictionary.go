package repository

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rocketscienceinc/wordgame-backend/internal/apperror"
)

type DictionaryRepository interface {
	Create(ctx context.Context, name string) (int64, error)
	GetByName(ctx context.Context, name string) (int64, error)
	ImportWords(ctx context.Context, dictionaryID int64, words io.Reader) (int, error)
	IsWord(ctx context.Context, dictionaryID int64, word string) (bool, error)
}

type dictionaryRepository struct {
	conn *sql.DB
}

func NewDictionaryRepository(conn *sql.DB) DictionaryRepository {
	return &dictionaryRepository{
		conn: conn,
	}
}

func (that *dictionaryRepository) Create(ctx context.Context, name string) (int64, error) {
	result, err := that.conn.ExecContext(ctx, `INSERT INTO dictionaries (name) VALUES (?)`, name)
	if err != nil {
		return 0, fmt.Errorf("can't save dictionary: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("can't get dictionary id: %w", err)
	}

	return id, nil
}

func (that *dictionaryRepository) GetByName(ctx context.Context, name string) (int64, error) {
	var id int64

	err := that.conn.QueryRowContext(ctx, `SELECT id FROM dictionaries WHERE name = ?`, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, apperror.ErrDictionaryNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("can't find dictionary %q: %w", name, err)
	}

	return id, nil
}

// ImportWords loads one word per line. Blank lines are skipped and words are stored upper-case.
func (that *dictionaryRepository) ImportWords(ctx context.Context, dictionaryID int64, words io.Reader) (int, error) {
	tx, err := that.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("can't begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint: errcheck

	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO dictionary_entries (dictionary_id, word) VALUES (?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("can't prepare word insert: %w", err)
	}
	defer stmt.Close()

	imported := 0
	scanner := bufio.NewScanner(words)
	for scanner.Scan() {
		word := strings.ToUpper(strings.TrimSpace(scanner.Text()))
		if word == "" {
			continue
		}

		result, err := stmt.ExecContext(ctx, dictionaryID, word)
		if err != nil {
			return 0, fmt.Errorf("can't save word %q: %w", word, err)
		}

		if inserted, err := result.RowsAffected(); err == nil {
			imported += int(inserted)
		}
	}

	if err = scanner.Err(); err != nil {
		return 0, fmt.Errorf("can't read word list: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("can't commit word list: %w", err)
	}

	return imported, nil
}

// IsWord is case-insensitive.
func (that *dictionaryRepository) IsWord(ctx context.Context, dictionaryID int64, word string) (bool, error) {
	var exists bool

	err := that.conn.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM dictionary_entries WHERE dictionary_id = ? AND word = ?)`,
		dictionaryID, strings.ToUpper(word)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("can't look up word: %w", err)
	}

	return exists, nil
}
