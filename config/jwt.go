package config

import (
	"errors"
	"time"
)

// MinSecretLength is the shortest HMAC secret accepted for signing tokens.
const MinSecretLength = 32

var (
	ErrEmptySecret    = errors.New("JWT_SECRET is required")
	ErrSecretTooShort = errors.New("JWT_SECRET must be at least 32 characters")
)

type JWTConfig struct {
	Secret     string
	Issuer     string
	Expiration time.Duration
}

func (c JWTConfig) Validate() error {
	if c.Secret == "" {
		return ErrEmptySecret
	}
	if len(c.Secret) < MinSecretLength {
		return ErrSecretTooShort
	}
	if c.Expiration <= 0 {
		return errors.New("JWT_EXPIRATION must be positive")
	}
	return nil
}
