// Package auth holds the credential primitives: access-token signing and validation, and bcrypt hashing.
package auth

import (
	"toolbox/config"
	"toolbox/internal/domain/service"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

const bcryptAlgorithm = "bcrypt"

type bcryptHasher struct {
	cost int
}

// NewBcryptHasher uses tools.bcryptCost when it lies within bcrypt's accepted range, otherwise bcrypt.DefaultCost.
func NewBcryptHasher(cfg *config.Config) service.PasswordHasher {
	cost := bcrypt.DefaultCost
	if cfg != nil && cfg.Tools != nil && cfg.Tools.BcryptCost >= bcrypt.MinCost && cfg.Tools.BcryptCost <= bcrypt.MaxCost {
		cost = cfg.Tools.BcryptCost
	}

	return &bcryptHasher{cost: cost}
}

func (h *bcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", errors.Wrap(err, "failed to hash password")
	}

	return string(hash), nil
}

func (h *bcryptHasher) Verify(password, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, errors.Wrap(service.ErrMalformedHash, err.Error())
	}
}

func (h *bcryptHasher) Inspect(hash string) (service.HashInfo, error) {
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		return service.HashInfo{}, errors.Wrap(service.ErrMalformedHash, err.Error())
	}

	return service.HashInfo{Algorithm: bcryptAlgorithm, Cost: cost}, nil
}
