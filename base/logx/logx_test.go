// Copyright (c) 2026, The Scry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logx

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelFromFlags(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, LevelFromFlags(true, false, false))
	assert.Equal(t, slog.LevelDebug, LevelFromFlags(true, false, true))
	assert.Equal(t, slog.LevelInfo, LevelFromFlags(false, true, false))
	assert.Equal(t, slog.LevelError, LevelFromFlags(false, false, true))
	assert.Equal(t, slog.LevelWarn, LevelFromFlags(false, false, false))
}

func TestLevelFromName(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, LevelFromName("debug"))
	assert.Equal(t, slog.LevelInfo, LevelFromName("info"))
	assert.Equal(t, slog.LevelWarn, LevelFromName("warn"))
	assert.Equal(t, slog.LevelError, LevelFromName("error"))
	assert.Equal(t, slog.LevelWarn, LevelFromName("bogus"))
}

func TestHandlerOutput(t *testing.T) {
	old := UserLevel
	defer func() { UserLevel = old }()
	UserLevel = slog.LevelInfo

	b := &strings.Builder{}
	lg := slog.New(NewHandler(b))
	lg.Info("opened", "path", "/data/x.csv")
	lg.Debug("not shown")

	out := b.String()
	assert.Contains(t, out, "INFO: opened path=/data/x.csv")
	assert.NotContains(t, out, "not shown")
}

func TestHandlerLevelChangeTakesEffect(t *testing.T) {
	old := UserLevel
	defer func() { UserLevel = old }()

	h := NewHandler(&strings.Builder{})
	UserLevel = slog.LevelWarn
	assert.False(t, h.Enabled(context.Background(), slog.LevelInfo))
	UserLevel = slog.LevelDebug
	assert.True(t, h.Enabled(context.Background(), slog.LevelInfo))
}

func TestHandlerWithAttrsAndGroup(t *testing.T) {
	old := UserLevel
	defer func() { UserLevel = old }()
	UserLevel = slog.LevelInfo

	b := &strings.Builder{}
	lg := slog.New(NewHandler(b)).With("repo", "scry")
	lg.Info("open", "path", "/data")
	assert.Contains(t, b.String(), "repo=scry path=/data")

	b2 := &strings.Builder{}
	slog.New(NewHandler(b2)).WithGroup("watch").Info("change", "dir", "/data")
	assert.Contains(t, b2.String(), "watch.dir=/data")
}
