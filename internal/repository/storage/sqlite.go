package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	// import the SQLite driver to register it with the database/sql package.
	_ "github.com/mattn/go-sqlite3"
)

// sqliteOptions: writers wait instead of failing, and every transaction takes the write lock up front.
const sqliteOptions = "?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on&_txlock=immediate"

type Storage struct {
	Connection *sql.DB
}

func NewSQLiteStorage(path string) (*Storage, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("can't create database directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite3", path+sqliteOptions)
	if err != nil {
		return nil, fmt.Errorf("can't open database: %w", err)
	}

	if err = conn.Ping(); err != nil {
		return nil, fmt.Errorf("can't connect to database: %w", err)
	}

	return &Storage{Connection: conn}, nil
}

func (that *Storage) Init(ctx context.Context) error {
	if _, err := that.Connection.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("can't create tables: %w", err)
	}

	return nil
}

func (that *Storage) Close() error {
	return that.Connection.Close()
}

const schema = `
CREATE TABLE IF NOT EXISTS board_layouts (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	name         TEXT    NOT NULL,
	row_count    INTEGER NOT NULL,
	column_count INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS positioned_modifiers (
	board_layout_id   INTEGER NOT NULL REFERENCES board_layouts (id) ON DELETE CASCADE,
	row_index         INTEGER NOT NULL,
	column_index      INTEGER NOT NULL,
	letter_multiplier INTEGER NOT NULL,
	word_multiplier   INTEGER NOT NULL,
	PRIMARY KEY (board_layout_id, row_index, column_index)
);

CREATE TABLE IF NOT EXISTS dictionaries (
	id   INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS dictionary_entries (
	dictionary_id INTEGER NOT NULL REFERENCES dictionaries (id) ON DELETE CASCADE,
	word          TEXT    NOT NULL,
	PRIMARY KEY (dictionary_id, word)
);

CREATE TABLE IF NOT EXISTS games (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	dictionary_id   INTEGER NOT NULL REFERENCES dictionaries (id),
	board_layout_id INTEGER NOT NULL REFERENCES board_layouts (id),
	turn_number     INTEGER NOT NULL DEFAULT 0,
	started_at      INTEGER NOT NULL,
	completed_at    INTEGER
);

CREATE TABLE IF NOT EXISTS game_players (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	game_id      INTEGER NOT NULL REFERENCES games (id) ON DELETE CASCADE,
	player_id    TEXT    NOT NULL,
	display_name TEXT    NOT NULL DEFAULT '',
	score        INTEGER NOT NULL DEFAULT 0,
	turn_order   INTEGER NOT NULL,
	UNIQUE (game_id, player_id),
	UNIQUE (game_id, turn_order)
);

CREATE TABLE IF NOT EXISTS rack_tiles (
	game_player_id INTEGER NOT NULL REFERENCES game_players (id) ON DELETE CASCADE,
	letter         TEXT    NOT NULL,
	value          INTEGER NOT NULL,
	is_blank       INTEGER NOT NULL,
	count          INTEGER NOT NULL CHECK (count > 0),
	PRIMARY KEY (game_player_id, letter, value, is_blank)
);

CREATE TABLE IF NOT EXISTS bag_tiles (
	game_id  INTEGER NOT NULL REFERENCES games (id) ON DELETE CASCADE,
	letter   TEXT    NOT NULL,
	value    INTEGER NOT NULL,
	is_blank INTEGER NOT NULL,
	count    INTEGER NOT NULL CHECK (count > 0),
	PRIMARY KEY (game_id, letter, value, is_blank)
);

CREATE TABLE IF NOT EXISTS played_tiles (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	letter       TEXT    NOT NULL,
	value        INTEGER NOT NULL,
	is_blank     INTEGER NOT NULL,
	row_index    INTEGER NOT NULL,
	column_index INTEGER NOT NULL,
	UNIQUE (letter, value, is_blank, row_index, column_index)
);

CREATE TABLE IF NOT EXISTS moves (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	game_id         INTEGER NOT NULL REFERENCES games (id) ON DELETE CASCADE,
	game_player_id  INTEGER NOT NULL REFERENCES game_players (id) ON DELETE CASCADE,
	turn_number     INTEGER NOT NULL,
	primary_word    TEXT,
	secondary_words TEXT    NOT NULL DEFAULT '',
	score           INTEGER NOT NULL,
	played_at       INTEGER NOT NULL,
	UNIQUE (game_id, turn_number)
);

CREATE TABLE IF NOT EXISTS move_tiles (
	move_id  INTEGER NOT NULL REFERENCES moves (id) ON DELETE CASCADE,
	kind     TEXT    NOT NULL CHECK (kind IN ('rack', 'exchanged')),
	letter   TEXT    NOT NULL,
	value    INTEGER NOT NULL,
	is_blank INTEGER NOT NULL,
	count    INTEGER NOT NULL CHECK (count > 0),
	PRIMARY KEY (move_id, kind, letter, value, is_blank)
);

CREATE TABLE IF NOT EXISTS board_tiles (
	game_id        INTEGER NOT NULL REFERENCES games (id) ON DELETE CASCADE,
	played_tile_id INTEGER NOT NULL REFERENCES played_tiles (id),
	move_id        INTEGER NOT NULL REFERENCES moves (id) ON DELETE CASCADE,
	PRIMARY KEY (game_id, played_tile_id)
);

CREATE TABLE IF NOT EXISTS locks (
	key    TEXT    NOT NULL UNIQUE,
	expiry INTEGER NOT NULL,
	owner  TEXT    NOT NULL
);
`
