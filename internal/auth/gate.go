// Package auth issues and checks the opaque tokens gating mutating booking
// operations.
package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"net/http"

	"roombooker/internal/config"
	"roombooker/internal/repository"
)

const tokenLength = 15 // hex characters

// Gate validates the static credential pair and tracks issued tokens in an
// injected store.
type Gate struct {
	cfg    config.AuthConfig
	tokens repository.TokenStore
}

func NewGate(cfg config.AuthConfig, tokens repository.TokenStore) *Gate {
	return &Gate{cfg: cfg, tokens: tokens}
}

// Issue returns a fresh token when the credentials match the configured
// pair, recording it as valid. ok=false means bad credentials; no token is
// generated in that case. Previously issued tokens stay valid, so several
// tokens can be live at once.
func (g *Gate) Issue(ctx context.Context, username, password string) (token string, ok bool, err error) {
	userMatch := subtle.ConstantTimeCompare([]byte(username), []byte(g.cfg.Username))
	passMatch := subtle.ConstantTimeCompare([]byte(password), []byte(g.cfg.Password))
	if userMatch&passMatch != 1 {
		return "", false, nil
	}

	token, err = newToken()
	if err != nil {
		return "", false, fmt.Errorf("generate token: %w", err)
	}
	if err := g.tokens.Save(ctx, token); err != nil {
		return "", false, fmt.Errorf("save token: %w", err)
	}
	return token, true, nil
}

// Authorized reports whether the request carries a previously issued token,
// via the token cookie or the Authorization header. Either one being valid
// is sufficient.
func (g *Gate) Authorized(ctx context.Context, r *http.Request) (bool, error) {
	if cookie, err := r.Cookie("token"); err == nil {
		ok, err := g.tokens.Valid(ctx, cookie.Value)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}

	if header := r.Header.Get("Authorization"); header != "" {
		return g.tokens.Valid(ctx, header)
	}
	return false, nil
}

func newToken() (string, error) {
	buf := make([]byte, (tokenLength+1)/2)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf)[:tokenLength], nil
}
