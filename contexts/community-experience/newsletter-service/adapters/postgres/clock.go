package postgresadapter

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SystemClock implements ports.Clock using wall-clock UTC time.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// UUIDTokens implements ports.TokenGenerator using RFC 4122 UUID v4
// values, which are unguessable enough for one-click confirmation links.
type UUIDTokens struct{}

func (UUIDTokens) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
