// Copyright (c) 2026, The Scry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// SetDefaultLogger sets the default [slog] logger to a [Handler]
// writing to [os.Stderr] at [UserLevel]. It should be called again
// whenever UserLevel changes.
func SetDefaultLogger() {
	slog.SetDefault(slog.New(NewHandler(os.Stderr)))
}

// Handler is a compact [slog.Handler] that formats records as a single
// line with the level, the message, and any key=value attributes.
// The level is checked against [UserLevel] at handling time, so that
// changing UserLevel takes effect without reconstructing the handler.
type Handler struct {
	mu    *sync.Mutex
	w     io.Writer
	attrs []slog.Attr
	group string
}

// NewHandler returns a new [Handler] writing to the given writer.
func NewHandler(w io.Writer) *Handler {
	return &Handler{mu: &sync.Mutex{}, w: w}
}

func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= UserLevel
}

func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	sb := &strings.Builder{}
	sb.WriteString(r.Level.String())
	sb.WriteString(": ")
	sb.WriteString(r.Message)
	wattr := func(a slog.Attr) {
		if a.Equal(slog.Attr{}) {
			return
		}
		sb.WriteString(" ")
		if h.group != "" {
			sb.WriteString(h.group)
			sb.WriteString(".")
		}
		sb.WriteString(a.Key)
		sb.WriteString("=")
		sb.WriteString(fmt.Sprintf("%v", a.Value.Resolve().Any()))
	}
	for _, a := range h.attrs {
		wattr(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		wattr(a)
		return true
	})
	sb.WriteString("\n")
	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, sb.String())
	return err
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	nh := &Handler{mu: h.mu, w: h.w, group: h.group}
	nh.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return nh
}

func (h *Handler) WithGroup(name string) slog.Handler {
	nh := &Handler{mu: h.mu, w: h.w, attrs: h.attrs, group: name}
	if h.group != "" {
		nh.group = h.group + "." + name
	}
	return nh
}
