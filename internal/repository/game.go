package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rocketscienceinc/wordgame-backend/internal/apperror"
	"github.com/rocketscienceinc/wordgame-backend/internal/entity"
)

const (
	insertRackTile = `INSERT INTO rack_tiles (game_player_id, letter, value, is_blank, count) VALUES (?, ?, ?, ?, ?)`
	insertBagTile  = `INSERT INTO bag_tiles (game_id, letter, value, is_blank, count) VALUES (?, ?, ?, ?, ?)`
)

type GameRepository interface {
	Create(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id int64) (*entity.Game, error)
	CommitTurn(ctx context.Context, game *entity.Game, move *entity.Move) error
}

type gameRepository struct {
	conn *sql.DB
}

func NewGameRepository(conn *sql.DB) GameRepository {
	return &gameRepository{
		conn: conn,
	}
}

// Create stores a new game with its players, racks and bag. The layout must already be stored.
// It sets the ids of the game and its players.
func (that *gameRepository) Create(ctx context.Context, game *entity.Game) error {
	tx, err := that.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("can't begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint: errcheck

	result, err := tx.ExecContext(ctx,
		`INSERT INTO games (dictionary_id, board_layout_id, turn_number, started_at, completed_at) VALUES (?, ?, ?, ?, ?)`,
		game.DictionaryID, game.Layout.ID, game.TurnNumber, game.StartedAt.UnixMilli(), nullableMillis(game.CompletedAt))
	if err != nil {
		return fmt.Errorf("can't save game: %w", err)
	}

	gameID, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("can't get game id: %w", err)
	}

	for i := range game.Players {
		player := &game.Players[i]

		result, err = tx.ExecContext(ctx,
			`INSERT INTO game_players (game_id, player_id, display_name, score, turn_order) VALUES (?, ?, ?, ?, ?)`,
			gameID, player.PlayerID, player.DisplayName, player.Score, player.TurnOrder)
		if err != nil {
			return fmt.Errorf("can't save game player %s: %w", player.PlayerID, err)
		}

		if player.ID, err = result.LastInsertId(); err != nil {
			return fmt.Errorf("can't get game player id: %w", err)
		}

		if err = insertTileCounts(ctx, tx, insertRackTile, player.ID, player.Rack); err != nil {
			return fmt.Errorf("can't save rack: %w", err)
		}
	}

	if err = insertTileCounts(ctx, tx, insertBagTile, gameID, game.Bag); err != nil {
		return fmt.Errorf("can't save bag: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("can't commit game: %w", err)
	}

	game.ID = gameID

	return nil
}

// GetByID loads the whole aggregate inside one transaction so no concurrent commit is seen half-applied.
func (that *gameRepository) GetByID(ctx context.Context, id int64) (*entity.Game, error) {
	tx, err := that.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("can't begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint: errcheck

	game := &entity.Game{ID: id}

	var (
		layoutID    int64
		startedAt   int64
		completedAt sql.NullInt64
	)
	err = tx.QueryRowContext(ctx,
		`SELECT dictionary_id, board_layout_id, turn_number, started_at, completed_at FROM games WHERE id = ?`, id).
		Scan(&game.DictionaryID, &layoutID, &game.TurnNumber, &startedAt, &completedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.ErrGameNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("can't find game: %w", err)
	}

	game.StartedAt = time.UnixMilli(startedAt).UTC()
	if completedAt.Valid {
		completed := time.UnixMilli(completedAt.Int64).UTC()
		game.CompletedAt = &completed
	}

	layout, err := loadBoardLayout(ctx, tx, layoutID)
	if err != nil {
		return nil, err
	}
	game.Layout = *layout

	if game.Players, err = that.loadPlayers(ctx, tx, id); err != nil {
		return nil, err
	}

	if game.Bag, err = queryTileCounts(ctx, tx,
		`SELECT letter, value, is_blank, count FROM bag_tiles WHERE game_id = ?`, id); err != nil {
		return nil, fmt.Errorf("can't load bag: %w", err)
	}

	rows, err := tx.QueryContext(ctx,
		`SELECT pt.letter, pt.value, pt.is_blank, pt.row_index, pt.column_index
		 FROM board_tiles bt JOIN played_tiles pt ON pt.id = bt.played_tile_id
		 WHERE bt.game_id = ? ORDER BY bt.move_id, pt.id`, id)
	if err != nil {
		return nil, fmt.Errorf("can't query board: %w", err)
	}

	if game.Board, err = scanPlayedTiles(rows); err != nil {
		return nil, fmt.Errorf("can't load board: %w", err)
	}

	return game, nil
}

func (that *gameRepository) loadPlayers(ctx context.Context, tx *sql.Tx, gameID int64) ([]entity.GamePlayer, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT id, player_id, display_name, score, turn_order FROM game_players WHERE game_id = ? ORDER BY turn_order`, gameID)
	if err != nil {
		return nil, fmt.Errorf("can't query game players: %w", err)
	}

	var players []entity.GamePlayer
	for rows.Next() {
		var player entity.GamePlayer
		if err = rows.Scan(&player.ID, &player.PlayerID, &player.DisplayName, &player.Score, &player.TurnOrder); err != nil {
			rows.Close()
			return nil, fmt.Errorf("can't scan game player: %w", err)
		}
		players = append(players, player)
	}
	rows.Close()

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("can't read game players: %w", err)
	}

	for i := range players {
		players[i].Rack, err = queryTileCounts(ctx, tx,
			`SELECT letter, value, is_blank, count FROM rack_tiles WHERE game_player_id = ?`, players[i].ID)
		if err != nil {
			return nil, fmt.Errorf("can't load rack of %s: %w", players[i].PlayerID, err)
		}
	}

	return players, nil
}

// CommitTurn stores the state after a turn and its move in one transaction.
// The update only applies while the stored turn number still equals move.TurnNumber,
// otherwise ErrConcurrentTurn is returned and nothing changes.
func (that *gameRepository) CommitTurn(ctx context.Context, game *entity.Game, move *entity.Move) error {
	tx, err := that.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("can't begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint: errcheck

	result, err := tx.ExecContext(ctx,
		`UPDATE games SET turn_number = ?, completed_at = ? WHERE id = ? AND turn_number = ?`,
		game.TurnNumber, nullableMillis(game.CompletedAt), game.ID, move.TurnNumber)
	if err != nil {
		return fmt.Errorf("can't update game: %w", err)
	}

	if updated, err := result.RowsAffected(); err != nil || updated != 1 {
		return fmt.Errorf("%w: game %d turn %d", apperror.ErrConcurrentTurn, game.ID, move.TurnNumber)
	}

	for _, player := range game.Players {
		if _, err = tx.ExecContext(ctx, `UPDATE game_players SET score = ? WHERE id = ?`, player.Score, player.ID); err != nil {
			return fmt.Errorf("can't update score of %s: %w", player.PlayerID, err)
		}

		if _, err = tx.ExecContext(ctx, `DELETE FROM rack_tiles WHERE game_player_id = ?`, player.ID); err != nil {
			return fmt.Errorf("can't clear rack of %s: %w", player.PlayerID, err)
		}

		if err = insertTileCounts(ctx, tx, insertRackTile, player.ID, player.Rack); err != nil {
			return fmt.Errorf("can't save rack of %s: %w", player.PlayerID, err)
		}
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM bag_tiles WHERE game_id = ?`, game.ID); err != nil {
		return fmt.Errorf("can't clear bag: %w", err)
	}

	if err = insertTileCounts(ctx, tx, insertBagTile, game.ID, game.Bag); err != nil {
		return fmt.Errorf("can't save bag: %w", err)
	}

	if err = insertMove(ctx, tx, move); err != nil {
		return err
	}

	for _, played := range move.PlayedTiles {
		playedTileID, err := fetchOrCreatePlayedTile(ctx, tx, played)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO board_tiles (game_id, played_tile_id, move_id) VALUES (?, ?, ?)`,
			game.ID, playedTileID, move.ID)
		if err != nil {
			return fmt.Errorf("can't place tile on board: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("can't commit turn: %w", err)
	}

	return nil
}

func insertMove(ctx context.Context, tx *sql.Tx, move *entity.Move) error {
	primaryWord := sql.NullString{String: move.PrimaryWord, Valid: move.PrimaryWord != ""}

	result, err := tx.ExecContext(ctx,
		`INSERT INTO moves (game_id, game_player_id, turn_number, primary_word, secondary_words, score, played_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		move.GameID, move.GamePlayerID, move.TurnNumber, primaryWord,
		strings.Join(move.SecondaryWords, ","), move.Score, move.PlayedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("can't save move: %w", err)
	}

	if move.ID, err = result.LastInsertId(); err != nil {
		return fmt.Errorf("can't get move id: %w", err)
	}

	insertMoveTile := `INSERT INTO move_tiles (move_id, kind, letter, value, is_blank, count) VALUES (?, '` + moveTileRack + `', ?, ?, ?, ?)`
	if err = insertTileCounts(ctx, tx, insertMoveTile, move.ID, move.RackTiles); err != nil {
		return fmt.Errorf("can't save move rack: %w", err)
	}

	insertExchanged := `INSERT INTO move_tiles (move_id, kind, letter, value, is_blank, count) VALUES (?, '` + moveTileExchanged + `', ?, ?, ?, ?)`
	if err = insertTileCounts(ctx, tx, insertExchanged, move.ID, move.ExchangedTiles); err != nil {
		return fmt.Errorf("can't save exchanged tiles: %w", err)
	}

	return nil
}

func nullableMillis(t *time.Time) sql.NullInt64 {
	if t == nil {
		return sql.NullInt64{}
	}

	return sql.NullInt64{Int64: t.UnixMilli(), Valid: true}
}
