package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"overcooked-cart/cart-svc/internal/domain"

	"github.com/sirupsen/logrus"
)

const (
	TokenKey = "token"
	UserKey  = "user"
)

// AuthGate decides whether a mutating action may run. A session exists
// exactly when a credential is stored; the credential is never inspected.
type AuthGate struct {
	store  DurableStore
	logger logrus.FieldLogger
}

func NewAuthGate(store DurableStore, logger logrus.FieldLogger) *AuthGate {
	return &AuthGate{store: store, logger: logger}
}

func (g *AuthGate) CurrentSession(ctx context.Context) (domain.UserSession, bool, error) {
	raw, ok, err := g.store.Read(ctx, TokenKey)
	if err != nil {
		return domain.UserSession{}, false, err
	}
	credential := strings.TrimSpace(string(raw))
	if !ok || credential == "" {
		return domain.UserSession{}, false, nil
	}

	session := domain.UserSession{}
	if profile, found, err := g.store.Read(ctx, UserKey); err != nil {
		return domain.UserSession{}, false, err
	} else if found {
		if err := json.Unmarshal(profile, &session); err != nil {
			g.logger.WithError(err).Warn("discarding unreadable user profile")
			session = domain.UserSession{}
		}
	}
	session.Credential = credential
	return session, true, nil
}

// RequireSession fails closed: a store failure is reported as such, and
// no session means ErrUnauthenticated.
func (g *AuthGate) RequireSession(ctx context.Context) (domain.UserSession, error) {
	session, ok, err := g.CurrentSession(ctx)
	if err != nil {
		return domain.UserSession{}, err
	}
	if !ok {
		return domain.UserSession{}, domain.ErrUnauthenticated
	}
	return session, nil
}

func (g *AuthGate) StartSession(ctx context.Context, credential string, profile domain.UserSession) error {
	if strings.TrimSpace(credential) == "" {
		return fmt.Errorf("%w: empty credential", domain.ErrValidation)
	}
	if err := g.saveProfile(ctx, profile); err != nil {
		return err
	}
	return g.store.Write(ctx, TokenKey, []byte(credential))
}

func (g *AuthGate) UpdateProfile(ctx context.Context, name, phone, address string) (domain.UserSession, error) {
	session, err := g.RequireSession(ctx)
	if err != nil {
		return domain.UserSession{}, err
	}
	session.Name = strings.TrimSpace(name)
	session.Phone = strings.TrimSpace(phone)
	session.Address = strings.TrimSpace(address)
	if err := g.saveProfile(ctx, session); err != nil {
		return domain.UserSession{}, err
	}
	return session, nil
}

// EndSession removes the credential first so a failure half way still
// leaves the client signed out.
func (g *AuthGate) EndSession(ctx context.Context) error {
	if err := g.store.Delete(ctx, TokenKey); err != nil {
		return err
	}
	return g.store.Delete(ctx, UserKey)
}

func (g *AuthGate) saveProfile(ctx context.Context, profile domain.UserSession) error {
	payload, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	return g.store.Write(ctx, UserKey, payload)
}
