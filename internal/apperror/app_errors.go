package apperror

import (
	"errors"
	"net/http"
)

var (
	ErrGameNotFound       = errors.New("game does not exist")
	ErrNotParticipant     = errors.New("user is not a player in this game")
	ErrLockAcquisition    = errors.New("failed to acquire lock")
	ErrConcurrentTurn     = errors.New("game state changed during turn commit")
	ErrLayoutNotFound     = errors.New("board layout not found")
	ErrDictionaryNotFound = errors.New("dictionary not found")
	ErrNewGameSchema      = errors.New("new game data does not conform to the schema")

	ErrNewGameSelfOpponent       = errors.New("player chose themself as an opponent")
	ErrNewGameLayoutDistribution = errors.New("board layout is too small for the tile distribution")
)

// Turn validation errors, one kind per violated rule.
var (
	ErrPlaySchema      = errors.New("turn play data does not conform to the schema")
	ErrPlayAxis        = errors.New("played tiles do not lie on a single axis")
	ErrPlayComplete    = errors.New("game is already completed")
	ErrPlayCurrentTurn = errors.New("not the player's turn")
	ErrPlayConnected   = errors.New("played tiles are not connected")
	ErrPlayRackTiles   = errors.New("played tiles are not on the rack")
	ErrPlayOverlap     = errors.New("played tiles overlap the board")
	ErrPlayContiguous  = errors.New("played tiles are not contiguous")
	ErrPlayDictionary  = errors.New("word not in dictionary")
	ErrPlayFirstTurn   = errors.New("first turn does not cover the centre")
)

var playMessages = map[error]string{
	ErrPlaySchema:      "Turn play data does not conform to the schema.",
	ErrPlayAxis:        "Played tiles do not lie on a single axis.",
	ErrPlayComplete:    "This game is over already.",
	ErrPlayCurrentTurn: "It is not your turn.",
	ErrPlayConnected:   "Played tiles do not join onto existing played words.",
	ErrPlayRackTiles:   "Player played a tile that they do not have.",
	ErrPlayOverlap:     "One or more of the positions of played tiles are already occupied.",
	ErrPlayContiguous:  "Played tiles do not form contiguous words.",
	ErrPlayDictionary:  "One or more created words are not in the dictionary.",
	ErrPlayFirstTurn:   "The first played word must go through the centre of the board.",
}

var playKinds = []error{
	ErrPlaySchema,
	ErrPlayAxis,
	ErrPlayComplete,
	ErrPlayCurrentTurn,
	ErrPlayRackTiles,
	ErrPlayFirstTurn,
	ErrPlayOverlap,
	ErrPlayConnected,
	ErrPlayContiguous,
	ErrPlayDictionary,
}

// PlayKind returns the turn validation kind wrapped by err, or nil if err is not one.
func PlayKind(err error) error {
	for _, kind := range playKinds {
		if errors.Is(err, kind) {
			return kind
		}
	}

	return nil
}

// IsPlayError reports whether err belongs to the turn validation family.
func IsPlayError(err error) bool {
	return PlayKind(err) != nil
}

// PlayMessage returns the user-facing message for a turn validation error.
func PlayMessage(err error) string {
	if kind := PlayKind(err); kind != nil {
		return playMessages[kind]
	}

	return "Invalid play data."
}

// PlayStatus maps a turn validation error to an HTTP status.
// Playing out of turn is an access problem, everything else is bad data.
func PlayStatus(err error) int {
	if errors.Is(err, ErrPlayCurrentTurn) {
		return http.StatusForbidden
	}

	return http.StatusBadRequest
}

var newGameMessages = map[error]string{
	ErrNewGameSchema:             "New game data does not conform to the schema.",
	ErrNewGameSelfOpponent:       "You cannot choose yourself as an opponent.",
	ErrNewGameLayoutDistribution: "The user's board layout is too small for the tile distribution.",
	ErrLayoutNotFound:            "Board layout does not exist.",
}

// NewGameMessage returns the user-facing message for a rejected game creation.
func NewGameMessage(err error) (string, bool) {
	for kind, message := range newGameMessages {
		if errors.Is(err, kind) {
			return message, true
		}
	}

	return "", false
}
