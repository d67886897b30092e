package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/rocketscienceinc/wordgame-backend/internal/apperror"
	"github.com/rocketscienceinc/wordgame-backend/internal/entity"
)

type layoutSeeder interface {
	Create(ctx context.Context, layout *entity.BoardLayout) error
	GetByName(ctx context.Context, name string) (*entity.BoardLayout, error)
}

type dictionarySeeder interface {
	Create(ctx context.Context, name string) (int64, error)
	GetByName(ctx context.Context, name string) (int64, error)
	ImportWords(ctx context.Context, dictionaryID int64, words io.Reader) (int, error)
}

// Catalog is what new games can be created with out of the box.
type Catalog struct {
	LayoutID     int64
	DictionaryID int64
}

// Bootstrap makes sure the standard layout and the named dictionary exist.
// Words are imported only when the dictionary is created, so a restart does not reload the list.
func Bootstrap(ctx context.Context, logger zerolog.Logger, layouts layoutSeeder, dictionaries dictionarySeeder, dictionaryName string, words func() (io.ReadCloser, error)) (*Catalog, error) {
	log := logger.With().Str("method", "Bootstrap").Logger()

	layout, err := layouts.GetByName(ctx, entity.StandardLayoutName)
	if errors.Is(err, apperror.ErrLayoutNotFound) {
		standard := entity.StandardLayout()
		if err = layouts.Create(ctx, &standard); err != nil {
			return nil, fmt.Errorf("failed to create standard layout: %w", err)
		}
		layout = &standard
		log.Info().Int64("layout_id", layout.ID).Msg("standard layout created")
	} else if err != nil {
		return nil, fmt.Errorf("failed to get standard layout: %w", err)
	}

	dictionaryID, err := dictionaries.GetByName(ctx, dictionaryName)
	if err == nil {
		return &Catalog{LayoutID: layout.ID, DictionaryID: dictionaryID}, nil
	}
	if !errors.Is(err, apperror.ErrDictionaryNotFound) {
		return nil, fmt.Errorf("failed to get dictionary: %w", err)
	}

	if dictionaryID, err = dictionaries.Create(ctx, dictionaryName); err != nil {
		return nil, fmt.Errorf("failed to create dictionary: %w", err)
	}

	if words != nil {
		reader, err := words()
		if err != nil {
			return nil, fmt.Errorf("failed to open word list: %w", err)
		}
		defer reader.Close()

		imported, err := dictionaries.ImportWords(ctx, dictionaryID, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to import words: %w", err)
		}

		log.Info().Str("dictionary", dictionaryName).Int("words", imported).Msg("dictionary imported")
	}

	return &Catalog{LayoutID: layout.ID, DictionaryID: dictionaryID}, nil
}
