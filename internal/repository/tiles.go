package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rocketscienceinc/wordgame-backend/internal/entity"
)

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// insertTileCounts writes a multiset with a query taking (owner, letter, value, is_blank, count).
func insertTileCounts(ctx context.Context, q queryer, query string, owner any, tiles entity.TileMultiset) error {
	for _, tileCount := range tiles.Counts() {
		tile := tileCount.Tile
		if _, err := q.ExecContext(ctx, query, owner, tile.Letter, tile.Value, tile.IsBlank, tileCount.Count); err != nil {
			return fmt.Errorf("can't insert tile %s: %w", tile, err)
		}
	}

	return nil
}

// scanTileCounts reads (letter, value, is_blank, count) rows into a multiset.
func scanTileCounts(rows *sql.Rows) (entity.TileMultiset, error) {
	defer rows.Close()

	tiles := entity.TileMultiset{}
	for rows.Next() {
		var (
			tile  entity.TileSpec
			count int
		)
		if err := rows.Scan(&tile.Letter, &tile.Value, &tile.IsBlank, &count); err != nil {
			return nil, fmt.Errorf("can't scan tile count: %w", err)
		}

		if count > 0 {
			tiles[tile] += count
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("can't read tile counts: %w", err)
	}

	return tiles, nil
}

func queryTileCounts(ctx context.Context, q queryer, query string, args ...any) (entity.TileMultiset, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("can't query tile counts: %w", err)
	}

	return scanTileCounts(rows)
}

// fetchOrCreatePlayedTile reuses the played tile row for an identical tile and position.
func fetchOrCreatePlayedTile(ctx context.Context, q queryer, played entity.PlayedTile) (int64, error) {
	tile := played.Tile

	_, err := q.ExecContext(ctx,
		`INSERT OR IGNORE INTO played_tiles (letter, value, is_blank, row_index, column_index) VALUES (?, ?, ?, ?, ?)`,
		tile.Letter, tile.Value, tile.IsBlank, played.Row, played.Column)
	if err != nil {
		return 0, fmt.Errorf("can't insert played tile: %w", err)
	}

	var id int64
	err = q.QueryRowContext(ctx,
		`SELECT id FROM played_tiles WHERE letter = ? AND value = ? AND is_blank = ? AND row_index = ? AND column_index = ?`,
		tile.Letter, tile.Value, tile.IsBlank, played.Row, played.Column).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("can't fetch played tile: %w", err)
	}

	return id, nil
}

func scanPlayedTiles(rows *sql.Rows) ([]entity.PlayedTile, error) {
	defer rows.Close()

	var played []entity.PlayedTile
	for rows.Next() {
		var tile entity.PlayedTile
		if err := rows.Scan(&tile.Tile.Letter, &tile.Tile.Value, &tile.Tile.IsBlank, &tile.Row, &tile.Column); err != nil {
			return nil, fmt.Errorf("can't scan played tile: %w", err)
		}
		played = append(played, tile)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("can't read played tiles: %w", err)
	}

	return played, nil
}
