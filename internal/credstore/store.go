package credstore

import (
	"context"
	"errors"

	"github.com/starter-squad/lms-portal/internal/config"
)

// Record is the persisted credential record: the issued token plus the
// denormalized user fields that travel with it. The five fields are
// always written together and cleared together; a record with a token
// but no role (or vice versa) is a bug in the writer, not the store.
type Record struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Token string `json:"token"`
}

// Store defines how the credential record is persisted across portal
// restarts. Implementations do no validation; the session manager is
// the only writer and decides what a usable record looks like.
type Store interface {
	Save(ctx context.Context, r Record) error
	Load(ctx context.Context) (*Record, error)
	Clear(ctx context.Context) error
}

var ErrUnknownBackend = errors.New("credstore: unknown backend")

// FromConfig builds the store named by the config's store.backend.
func FromConfig(conf *config.Config) (Store, error) {
	switch conf.Store.Backend {
	case "file":
		return NewFileStore(conf.Store.Path), nil
	case "redis":
		return NewRedisStore(conf.Store.Redis.Addr, conf.Store.Redis.Password)
	case "memory":
		return NewMemoryStore(), nil
	}
	return nil, ErrUnknownBackend
}
