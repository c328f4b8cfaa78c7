// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-fit-keeper/internal/adapter"
	"github.com/MKhiriev/go-fit-keeper/internal/logger"
	"github.com/MKhiriev/go-fit-keeper/internal/store"
	"github.com/MKhiriev/go-fit-keeper/internal/utils"
	"github.com/MKhiriev/go-fit-keeper/models"
)

// sessionStateKey is the local state key holding the active session.
const sessionStateKey = "fitkeeper:session"

type sessionService struct {
	state  store.KVStateRepository
	remote adapter.RemoteStore
	logger *logger.Logger
	now    func() time.Time

	mu       sync.Mutex
	session  models.Session
	onSignIn []func(ctx context.Context, session models.Session)
}

func NewSessionService(state store.KVStateRepository, remote adapter.RemoteStore, logger *logger.Logger) SessionService {
	return &sessionService{
		state:  state,
		remote: remote,
		logger: logger,
		now:    time.Now,
	}
}

func (s *sessionService) SignIn(ctx context.Context, token string) (models.Session, error) {
	userID, err := utils.ParseUserIDFromJWT(token)
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	session := models.Session{
		UserID:     userID,
		Token:      token,
		SignedInAt: s.now(),
	}

	if err := s.persist(ctx, session); err != nil {
		return models.Session{}, err
	}

	s.remote.SetToken(token)
	s.setActive(session)

	s.logger.Info().Str("func", "sessionService.SignIn").
		Str("user_id", userID).
		Msg("session established")

	s.fireSignIn(ctx, session)
	return session, nil
}

func (s *sessionService) SignOut(ctx context.Context) error {
	s.mu.Lock()
	userID := s.session.UserID
	s.session = models.Session{}
	s.mu.Unlock()

	s.remote.SetToken("")

	if err := s.state.Delete(ctx, sessionStateKey); err != nil {
		return fmt.Errorf("clear persisted session: %w", err)
	}

	s.logger.Info().Str("func", "sessionService.SignOut").
		Str("user_id", userID).
		Msg("session cleared")
	return nil
}

func (s *sessionService) Restore(ctx context.Context) (models.Session, error) {
	raw, err := s.state.Get(ctx, sessionStateKey)
	if errors.Is(err, store.ErrStateNotFound) {
		return models.Session{}, ErrNoActiveSession
	}
	if err != nil {
		return models.Session{}, fmt.Errorf("load persisted session: %w", err)
	}

	var session models.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return models.Session{}, fmt.Errorf("decode persisted session: %w", err)
	}
	if !session.Active() {
		return models.Session{}, ErrNoActiveSession
	}

	s.remote.SetToken(session.Token)
	s.setActive(session)

	s.logger.Info().Str("func", "sessionService.Restore").
		Str("user_id", session.UserID).
		Msg("session restored from local state")

	s.fireSignIn(ctx, session)
	return session, nil
}

func (s *sessionService) Active() (models.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session, s.session.Active()
}

func (s *sessionService) OnSignIn(fn func(ctx context.Context, session models.Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onSignIn = append(s.onSignIn, fn)
}

func (s *sessionService) setActive(session models.Session) {
	s.mu.Lock()
	s.session = session
	s.mu.Unlock()
}

func (s *sessionService) fireSignIn(ctx context.Context, session models.Session) {
	s.mu.Lock()
	callbacks := s.onSignIn
	s.mu.Unlock()

	for _, fn := range callbacks {
		fn(ctx, session)
	}
}

func (s *sessionService) persist(ctx context.Context, session models.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.state.Set(ctx, sessionStateKey, raw); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}
