package storage

import (
	"context"
	"errors"
	"strings"
)

var ErrInvalidScope = errors.New("client id must be 1-64 characters of [A-Za-z0-9_-]")

type backend interface {
	Read(ctx context.Context, key string) ([]byte, bool, error)
	Write(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// ScopedStore confines a client to its own key space, the way a browser
// only sees its own local storage.
type ScopedStore struct {
	base   backend
	prefix string
}

func Scoped(base backend, clientID string) (*ScopedStore, error) {
	if !validClientID(clientID) {
		return nil, ErrInvalidScope
	}
	return &ScopedStore{base: base, prefix: "client:" + clientID + ":"}, nil
}

func (s *ScopedStore) Key(key string) string {
	return s.prefix + key
}

func (s *ScopedStore) Read(ctx context.Context, key string) ([]byte, bool, error) {
	return s.base.Read(ctx, s.Key(key))
}

func (s *ScopedStore) Write(ctx context.Context, key string, value []byte) error {
	return s.base.Write(ctx, s.Key(key), value)
}

func (s *ScopedStore) Delete(ctx context.Context, key string) error {
	return s.base.Delete(ctx, s.Key(key))
}

func validClientID(id string) bool {
	if id == "" || len(id) > 64 {
		return false
	}
	return strings.IndexFunc(id, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '-' || r == '_')
	}) < 0
}
