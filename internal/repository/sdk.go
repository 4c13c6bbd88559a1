package repository

import (
	"context"
	"crypto/subtle"
)

// SDKRepository validates the API keys reward-issuance clients authenticate with.
type SDKRepository interface {
	ValidateAPIKey(ctx context.Context, apiKey string) (bool, error)
}

// StaticSDKKeyRepository holds the keys configured at start-up.
type StaticSDKKeyRepository struct {
	keys [][]byte
}

func NewStaticSDKKeyRepository(keys []string) *StaticSDKKeyRepository {
	r := &StaticSDKKeyRepository{keys: make([][]byte, 0, len(keys))}
	for _, k := range keys {
		if k == "" {
			continue
		}
		r.keys = append(r.keys, []byte(k))
	}
	return r
}

func (r *StaticSDKKeyRepository) ValidateAPIKey(ctx context.Context, apiKey string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	candidate := []byte(apiKey)
	found := 0
	for _, k := range r.keys {
		found |= subtle.ConstantTimeCompare(k, candidate)
	}
	return found == 1, nil
}
