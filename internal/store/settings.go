package store

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/spf13/cast"

	"github.com/Ruggero-R/EzSupply/internal/docstore"
)

// GetJWTSecret retrieves the token signing secret from the settings
// collection, generating and storing one on first run so tokens survive
// server restarts.
func GetJWTSecret(ctx context.Context, db docstore.Store) (string, error) {
	raw, err := db.Get(ctx, settingsCollection, "auth")
	if err != nil {
		return "", fmt.Errorf("reading auth settings: %w", err)
	}

	if secret := cast.ToString(raw["jwtSecret"]); secret != "" {
		return secret, nil
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating jwt secret: %w", err)
	}
	secret := hex.EncodeToString(buf)

	err = db.Merge(ctx, settingsCollection, "auth", docstore.Fields{"jwtSecret": secret})
	if err != nil {
		return "", fmt.Errorf("storing jwt secret: %w", err)
	}

	return secret, nil
}
