// Package auth implements the shared-secret gate in front of the tool. A
// correct secret unlocks everything for the rest of the process; there is
// no per-action authorisation and no lockout.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrWrongSecret is returned for an incorrect attempt.
	ErrWrongSecret = errors.New("password incorrect")

	// ErrNoSecret means neither a password nor a password hash is configured.
	ErrNoSecret = errors.New("no password configured")
)

// Gate checks attempts against a configured secret.
type Gate struct {
	password []byte
	hash     []byte
}

// NewGate builds a gate from a plain password or a bcrypt hash. When both
// are set the hash is used.
func NewGate(password, passwordHash string) (*Gate, error) {
	switch {
	case passwordHash != "":
		if _, err := bcrypt.Cost([]byte(passwordHash)); err != nil {
			return nil, fmt.Errorf("invalid password hash: %w", err)
		}
		return &Gate{hash: []byte(passwordHash)}, nil
	case password != "":
		return &Gate{password: []byte(password)}, nil
	default:
		return nil, ErrNoSecret
	}
}

// Check returns nil when attempt matches the secret, ErrWrongSecret otherwise.
func (g *Gate) Check(attempt string) error {
	if g.hash != nil {
		if err := bcrypt.CompareHashAndPassword(g.hash, []byte(attempt)); err != nil {
			return ErrWrongSecret
		}
		return nil
	}
	if subtle.ConstantTimeCompare(g.password, []byte(attempt)) != 1 {
		return ErrWrongSecret
	}
	return nil
}

// Prompt asks for one attempt. wrong is true when the previous attempt was
// rejected, so the caller can show a retry message.
type Prompt func(ctx context.Context, wrong bool) (string, error)

// Unlock prompts until an attempt matches. It only gives up when prompt
// fails or ctx is cancelled.
func (g *Gate) Unlock(ctx context.Context, prompt Prompt) error {
	wrong := false
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		attempt, err := prompt(ctx, wrong)
		if err != nil {
			return err
		}
		if g.Check(attempt) == nil {
			return nil
		}
		wrong = true
	}
}
