// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-fit-keeper/internal/logger"
	"github.com/MKhiriev/go-fit-keeper/internal/mock"
)

func newTestMonitor(t *testing.T) (*connectivityMonitor, *mock.MockRemoteStore) {
	t.Helper()
	ctrl := gomock.NewController(t)
	remote := mock.NewMockRemoteStore(ctrl)
	m := NewConnectivityMonitor(remote, time.Second, logger.Nop()).(*connectivityMonitor)
	return m, remote
}

func TestMonitor_StartsOffline(t *testing.T) {
	m, _ := newTestMonitor(t)
	assert.False(t, m.Online())
}

func TestMonitor_ProbeFlipsOnline(t *testing.T) {
	m, remote := newTestMonitor(t)

	remote.EXPECT().Ping(gomock.Any()).Return(nil)
	m.probe(context.Background())

	assert.True(t, m.Online())
}

func TestMonitor_SubscribersNotifiedOnEdgesOnly(t *testing.T) {
	m, remote := newTestMonitor(t)

	var transitions []bool
	m.Subscribe(func(online bool) { transitions = append(transitions, online) })

	gomock.InOrder(
		remote.EXPECT().Ping(gomock.Any()).Return(nil),
		remote.EXPECT().Ping(gomock.Any()).Return(nil),
		remote.EXPECT().Ping(gomock.Any()).Return(errors.New("connection refused")),
		remote.EXPECT().Ping(gomock.Any()).Return(errors.New("connection refused")),
		remote.EXPECT().Ping(gomock.Any()).Return(nil),
	)

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		m.probe(ctx)
	}

	assert.Equal(t, []bool{true, false, true}, transitions,
		"repeated probes with the same outcome are silent")
}

func TestMonitor_AllSubscribersReceiveTransition(t *testing.T) {
	m, remote := newTestMonitor(t)

	var first, second bool
	m.Subscribe(func(online bool) { first = online })
	m.Subscribe(func(online bool) { second = online })

	remote.EXPECT().Ping(gomock.Any()).Return(nil)
	m.probe(context.Background())

	assert.True(t, first)
	assert.True(t, second)
}

func TestMonitor_StartProbesImmediately(t *testing.T) {
	m, remote := newTestMonitor(t)

	probed := make(chan struct{})
	remote.EXPECT().Ping(gomock.Any()).DoAndReturn(func(context.Context) error {
		close(probed)
		return nil
	})

	m.Start(context.Background())
	defer m.Stop()

	select {
	case <-probed:
	case <-time.After(time.Second):
		t.Fatal("no probe after Start")
	}
	assert.Eventually(t, m.Online, time.Second, 5*time.Millisecond)

	// idempotent: a second Start must not spawn a second probe loop
	m.Start(context.Background())
	m.Stop()
	m.Stop()
}
