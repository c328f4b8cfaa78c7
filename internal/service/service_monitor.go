// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-fit-keeper/internal/adapter"
	"github.com/MKhiriev/go-fit-keeper/internal/logger"
)

type connectivityMonitor struct {
	remote   adapter.RemoteStore
	interval time.Duration
	logger   *logger.Logger

	mu     sync.Mutex
	online bool
	subs   []func(online bool)
	cancel context.CancelFunc
}

func NewConnectivityMonitor(remote adapter.RemoteStore, probeInterval time.Duration, logger *logger.Logger) ConnectivityMonitor {
	return &connectivityMonitor{
		remote:   remote,
		interval: probeInterval,
		logger:   logger,
	}
}

func (m *connectivityMonitor) Start(ctx context.Context) {
	m.mu.Lock()
	if m.cancel != nil {
		m.mu.Unlock()
		return
	}
	ctx, m.cancel = context.WithCancel(ctx)
	m.mu.Unlock()

	go m.run(ctx)
}

func (m *connectivityMonitor) Stop() {
	m.mu.Lock()
	cancel := m.cancel
	m.cancel = nil
	m.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

func (m *connectivityMonitor) Online() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.online
}

func (m *connectivityMonitor) Subscribe(fn func(online bool)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs = append(m.subs, fn)
}

func (m *connectivityMonitor) run(ctx context.Context) {
	m.probe(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.probe(ctx)
		}
	}
}

// probe pings the remote store once and notifies subscribers when the
// observed reachability flips. Notifications are edge-triggered only.
func (m *connectivityMonitor) probe(ctx context.Context) {
	probeCtx, cancel := context.WithTimeout(ctx, m.interval)
	err := m.remote.Ping(probeCtx)
	cancel()

	online := err == nil

	m.mu.Lock()
	changed := online != m.online
	m.online = online
	subs := m.subs
	m.mu.Unlock()

	if !changed {
		return
	}

	m.logger.Info().Str("func", "connectivityMonitor.probe").
		Bool("online", online).
		Msg("connectivity changed")

	for _, fn := range subs {
		fn(online)
	}
}
