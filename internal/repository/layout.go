package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/wordgame-backend/internal/apperror"
	"github.com/rocketscienceinc/wordgame-backend/internal/entity"
)

type BoardLayoutRepository interface {
	Create(ctx context.Context, layout *entity.BoardLayout) error
	GetByID(ctx context.Context, id int64) (*entity.BoardLayout, error)
	GetByName(ctx context.Context, name string) (*entity.BoardLayout, error)
}

type boardLayoutRepository struct {
	conn *sql.DB
}

func NewBoardLayoutRepository(conn *sql.DB) BoardLayoutRepository {
	return &boardLayoutRepository{
		conn: conn,
	}
}

// Create stores the layout with its modifiers and sets layout.ID.
func (that *boardLayoutRepository) Create(ctx context.Context, layout *entity.BoardLayout) error {
	tx, err := that.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("can't begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint: errcheck

	result, err := tx.ExecContext(ctx,
		`INSERT INTO board_layouts (name, row_count, column_count) VALUES (?, ?, ?)`,
		layout.Name, layout.Rows, layout.Columns)
	if err != nil {
		return fmt.Errorf("can't save board layout: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("can't get board layout id: %w", err)
	}

	for _, positioned := range layout.Modifiers {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO positioned_modifiers (board_layout_id, row_index, column_index, letter_multiplier, word_multiplier)
			 VALUES (?, ?, ?, ?, ?)`,
			id, positioned.Row, positioned.Column, positioned.Modifier.LetterMultiplier, positioned.Modifier.WordMultiplier)
		if err != nil {
			return fmt.Errorf("can't save modifier at (%d, %d): %w", positioned.Row, positioned.Column, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("can't commit board layout: %w", err)
	}

	layout.ID = id

	return nil
}

func (that *boardLayoutRepository) GetByID(ctx context.Context, id int64) (*entity.BoardLayout, error) {
	return loadBoardLayout(ctx, that.conn, id)
}

// GetByName returns the earliest stored layout with the name.
func (that *boardLayoutRepository) GetByName(ctx context.Context, name string) (*entity.BoardLayout, error) {
	var id int64

	err := that.conn.QueryRowContext(ctx,
		`SELECT id FROM board_layouts WHERE name = ? ORDER BY id LIMIT 1`, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.ErrLayoutNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("can't find board layout %q: %w", name, err)
	}

	return loadBoardLayout(ctx, that.conn, id)
}

func loadBoardLayout(ctx context.Context, q queryer, id int64) (*entity.BoardLayout, error) {
	layout := &entity.BoardLayout{ID: id}

	err := q.QueryRowContext(ctx,
		`SELECT name, row_count, column_count FROM board_layouts WHERE id = ?`, id).
		Scan(&layout.Name, &layout.Rows, &layout.Columns)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.ErrLayoutNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("can't find board layout: %w", err)
	}

	rows, err := q.QueryContext(ctx,
		`SELECT row_index, column_index, letter_multiplier, word_multiplier
		 FROM positioned_modifiers WHERE board_layout_id = ? ORDER BY row_index, column_index`, id)
	if err != nil {
		return nil, fmt.Errorf("can't query modifiers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var positioned entity.PositionedModifier
		if err = rows.Scan(&positioned.Row, &positioned.Column, &positioned.Modifier.LetterMultiplier, &positioned.Modifier.WordMultiplier); err != nil {
			return nil, fmt.Errorf("can't scan modifier: %w", err)
		}
		layout.Modifiers = append(layout.Modifiers, positioned)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("can't read modifiers: %w", err)
	}

	return layout, nil
}
