package rest

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog/hlog"
)

type contextKey string

const playerCtxKey = contextKey("player")

type tokenParser interface {
	ParseToken(token string) (string, error)
}

// RequirePlayer rejects requests without a valid bearer token and stores the player id for handlers.
func RequirePlayer(auth tokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				writeError(w, http.StatusUnauthorized, "Missing authorization token.")
				return
			}

			playerID, err := auth.ParseToken(token)
			if err != nil {
				hlog.FromRequest(r).Debug().Err(err).Msg("rejected token")
				writeError(w, http.StatusUnauthorized, "Invalid authorization token.")
				return
			}

			ctx := context.WithValue(r.Context(), playerCtxKey, playerID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PlayerID is the authenticated player of the request, empty outside RequirePlayer.
func PlayerID(ctx context.Context) string {
	playerID, _ := ctx.Value(playerCtxKey).(string)
	return playerID
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || strings.TrimSpace(token) == "" {
		return "", false
	}

	return strings.TrimSpace(token), true
}
