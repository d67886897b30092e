package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rocketscienceinc/wordgame-backend/internal/entity"
)

const (
	moveTileRack      = "rack"
	moveTileExchanged = "exchanged"
)

var ErrNoMoves = errors.New("game has no moves yet")

type MoveRepository interface {
	ListByGame(ctx context.Context, gameID int64) ([]entity.Move, error)
	LastByGame(ctx context.Context, gameID int64) (*entity.Move, error)
}

type moveRepository struct {
	conn *sql.DB
}

func NewMoveRepository(conn *sql.DB) MoveRepository {
	return &moveRepository{
		conn: conn,
	}
}

const selectMoves = `SELECT id, game_id, game_player_id, turn_number, primary_word, secondary_words, score, played_at FROM moves`

// ListByGame returns every move of a game in turn order.
func (that *moveRepository) ListByGame(ctx context.Context, gameID int64) ([]entity.Move, error) {
	rows, err := that.conn.QueryContext(ctx, selectMoves+` WHERE game_id = ? ORDER BY turn_number`, gameID)
	if err != nil {
		return nil, fmt.Errorf("can't query moves: %w", err)
	}

	moves, err := scanMoves(rows)
	if err != nil {
		return nil, err
	}

	for i := range moves {
		if err = that.loadTiles(ctx, &moves[i]); err != nil {
			return nil, err
		}
	}

	return moves, nil
}

// LastByGame returns the most recent move, or ErrNoMoves.
func (that *moveRepository) LastByGame(ctx context.Context, gameID int64) (*entity.Move, error) {
	rows, err := that.conn.QueryContext(ctx, selectMoves+` WHERE game_id = ? ORDER BY turn_number DESC LIMIT 1`, gameID)
	if err != nil {
		return nil, fmt.Errorf("can't query last move: %w", err)
	}

	moves, err := scanMoves(rows)
	if err != nil {
		return nil, err
	}

	if len(moves) == 0 {
		return nil, ErrNoMoves
	}

	move := &moves[0]
	if err = that.loadTiles(ctx, move); err != nil {
		return nil, err
	}

	return move, nil
}

func (that *moveRepository) loadTiles(ctx context.Context, move *entity.Move) error {
	var err error

	const selectMoveTiles = `SELECT letter, value, is_blank, count FROM move_tiles WHERE move_id = ? AND kind = ?`
	if move.RackTiles, err = queryTileCounts(ctx, that.conn, selectMoveTiles, move.ID, moveTileRack); err != nil {
		return fmt.Errorf("can't load move rack: %w", err)
	}

	if move.ExchangedTiles, err = queryTileCounts(ctx, that.conn, selectMoveTiles, move.ID, moveTileExchanged); err != nil {
		return fmt.Errorf("can't load exchanged tiles: %w", err)
	}

	rows, err := that.conn.QueryContext(ctx,
		`SELECT pt.letter, pt.value, pt.is_blank, pt.row_index, pt.column_index
		 FROM board_tiles bt JOIN played_tiles pt ON pt.id = bt.played_tile_id
		 WHERE bt.move_id = ? ORDER BY pt.id`, move.ID)
	if err != nil {
		return fmt.Errorf("can't query played tiles: %w", err)
	}

	if move.PlayedTiles, err = scanPlayedTiles(rows); err != nil {
		return fmt.Errorf("can't load played tiles: %w", err)
	}

	return nil
}

func scanMoves(rows *sql.Rows) ([]entity.Move, error) {
	defer rows.Close()

	var moves []entity.Move
	for rows.Next() {
		var (
			move           entity.Move
			primaryWord    sql.NullString
			secondaryWords string
			playedAt       int64
		)
		err := rows.Scan(&move.ID, &move.GameID, &move.GamePlayerID, &move.TurnNumber,
			&primaryWord, &secondaryWords, &move.Score, &playedAt)
		if err != nil {
			return nil, fmt.Errorf("can't scan move: %w", err)
		}

		move.PrimaryWord = primaryWord.String
		move.SecondaryWords = splitWords(secondaryWords)
		move.PlayedAt = time.UnixMilli(playedAt).UTC()
		moves = append(moves, move)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("can't read moves: %w", err)
	}

	return moves, nil
}

func splitWords(joined string) []string {
	if joined == "" {
		return []string{}
	}

	return strings.Split(joined, ",")
}
