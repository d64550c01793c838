/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package database

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"go.mongodb.org/mongo-driver/event"
)

const (
	ansiReset   = "\x1b[0m"
	ansiRed     = "\x1b[31m"
	ansiGreen   = "\x1b[32m"
	ansiYellow  = "\x1b[33m"
	ansiBlue    = "\x1b[34m"
	ansiMagenta = "\x1b[35m"
	ansiCyan    = "\x1b[36m"
)

var commandLogSilentMode bool

// EnableCommandLogSilent suppresses all command log output, regardless of
// configuration or environment toggles.
func EnableCommandLogSilent(b bool) {
	commandLogSilentMode = b
}

func colorWrap(s, code string) string { return fmt.Sprintf("%s%s%s", code, s, ansiReset) }

// commandLogHook prints every finished server command with its duration and,
// above a threshold, a slow-command warning. It implements the driver's
// command monitor callbacks.
type commandLogHook struct {
	envName  string
	enabled  bool
	slowTime time.Duration
	writer   io.Writer
	logger   Logger

	mu      sync.Mutex
	started map[int64]string // request id -> command body
}

// NewCommandMonitor builds an event.CommandMonitor that logs commands to the
// writer. The environment variable named by envName overrides enablement at
// runtime ("0" disables, anything else enables).
func NewCommandMonitor(envName string, enabled bool, slowTime time.Duration, writer io.Writer, logger Logger) *event.CommandMonitor {
	if writer == nil {
		writer = os.Stdout
	}
	h := &commandLogHook{
		envName:  envName,
		enabled:  enabled,
		slowTime: slowTime,
		writer:   writer,
		logger:   logger,
		started:  make(map[int64]string),
	}
	return &event.CommandMonitor{
		Started:   h.commandStarted,
		Succeeded: h.commandSucceeded,
		Failed:    h.commandFailed,
	}
}

func (h *commandLogHook) logEnabled() bool {
	if commandLogSilentMode {
		return false
	}
	enabled := h.enabled
	if env, ok := os.LookupEnv(h.envName); ok {
		enabled = env != "" && env != "0"
	}
	return enabled
}

func (h *commandLogHook) commandStarted(_ context.Context, evt *event.CommandStartedEvent) {
	if !h.logEnabled() && h.slowTime <= 0 {
		return
	}
	h.mu.Lock()
	h.started[evt.RequestID] = evt.Command.String()
	h.mu.Unlock()
}

func (h *commandLogHook) pop(requestID int64) string {
	h.mu.Lock()
	defer h.mu.Unlock()
	cmd := h.started[requestID]
	delete(h.started, requestID)
	return cmd
}

func (h *commandLogHook) commandSucceeded(_ context.Context, evt *event.CommandSucceededEvent) {
	cmd := h.pop(evt.RequestID)
	dur := time.Duration(evt.DurationNanos)

	if h.slowTime > 0 && dur > h.slowTime && h.logger != nil {
		h.logger.Warn("Slow command detected:",
			"command", evt.CommandName,
			"duration", dur,
			"slow_threshold", h.slowTime,
		)
	}
	if !h.logEnabled() {
		return
	}
	_, _ = fmt.Fprintln(h.writer,
		time.Now().Format("2006-01-02 15:04:05.000"),
		colorWrap(fmt.Sprintf("%12s", "[MONGO]"), ansiCyan),
		fmt.Sprintf("%15s", dur.Round(time.Microsecond)),
		"  ", formatCommandColor(evt.CommandName, cmd),
	)
}

func (h *commandLogHook) commandFailed(_ context.Context, evt *event.CommandFailedEvent) {
	cmd := h.pop(evt.RequestID)
	if !h.logEnabled() {
		return
	}
	_, _ = fmt.Fprintln(h.writer,
		time.Now().Format("2006-01-02 15:04:05.000"),
		colorWrap(fmt.Sprintf("%12s", "[MONGO]"), ansiCyan),
		fmt.Sprintf("%15s", time.Duration(evt.DurationNanos).Round(time.Microsecond)),
		"  ", formatCommandColor(evt.CommandName, cmd),
		"\t", color.New(color.BgRed).Sprintf(" %s ", evt.Failure),
	)
}

func formatCommandColor(commandName, body string) string {
	text := body
	if text == "" {
		text = commandName
	}
	switch strings.ToLower(commandName) {
	case "find", "getmore":
		return colorWrap(text, ansiGreen)
	case "insert":
		return colorWrap(text, ansiBlue)
	case "update", "findandmodify":
		return colorWrap(text, ansiYellow)
	case "delete":
		return colorWrap(text, ansiMagenta)
	case "aggregate", "count", "distinct":
		return colorWrap(text, ansiCyan)
	default:
		return colorWrap(text, ansiRed)
	}
}
