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
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/event"
)

func TestCommandMonitorLogsSucceededCommand(t *testing.T) {
	var buf bytes.Buffer
	monitor := NewCommandMonitor("MANGO_TEST_COMMAND_LOG_UNSET", true, 0, &buf, nil)

	raw, err := bson.Marshal(bson.M{"find": "users"})
	require.NoError(t, err)

	ctx := context.Background()
	monitor.Started(ctx, &event.CommandStartedEvent{
		CommandName: "find",
		RequestID:   7,
		Command:     raw,
	})
	monitor.Succeeded(ctx, &event.CommandSucceededEvent{
		CommandFinishedEvent: event.CommandFinishedEvent{
			CommandName:   "find",
			RequestID:     7,
			DurationNanos: int64(3 * time.Millisecond),
		},
	})

	out := buf.String()
	assert.Contains(t, out, "[MONGO]")
	assert.Contains(t, out, "users")
}

func TestCommandMonitorSilentMode(t *testing.T) {
	EnableCommandLogSilent(true)
	defer EnableCommandLogSilent(false)

	var buf bytes.Buffer
	monitor := NewCommandMonitor("MANGO_TEST_COMMAND_LOG_UNSET", true, 0, &buf, nil)

	monitor.Succeeded(context.Background(), &event.CommandSucceededEvent{
		CommandFinishedEvent: event.CommandFinishedEvent{CommandName: "find", RequestID: 1},
	})
	assert.Empty(t, buf.String())
}

func TestCommandMonitorEnvOverride(t *testing.T) {
	t.Setenv("MANGO_TEST_COMMAND_LOG", "0")

	var buf bytes.Buffer
	monitor := NewCommandMonitor("MANGO_TEST_COMMAND_LOG", true, 0, &buf, nil)

	monitor.Succeeded(context.Background(), &event.CommandSucceededEvent{
		CommandFinishedEvent: event.CommandFinishedEvent{CommandName: "find", RequestID: 1},
	})
	assert.Empty(t, buf.String())
}

func TestCommandMonitorLogsFailure(t *testing.T) {
	var buf bytes.Buffer
	monitor := NewCommandMonitor("MANGO_TEST_COMMAND_LOG_UNSET", true, 0, &buf, nil)

	monitor.Failed(context.Background(), &event.CommandFailedEvent{
		CommandFinishedEvent: event.CommandFinishedEvent{CommandName: "insert", RequestID: 2},
		Failure:              "E11000 duplicate key error",
	})
	assert.Contains(t, buf.String(), "duplicate key")
}

func TestFormatCommandColor(t *testing.T) {
	cases := map[string]string{
		"find":      ansiGreen,
		"insert":    ansiBlue,
		"update":    ansiYellow,
		"delete":    ansiMagenta,
		"aggregate": ansiCyan,
		"drop":      ansiRed,
	}
	for name, code := range cases {
		out := formatCommandColor(name, "body")
		assert.True(t, strings.HasPrefix(out, code), name)
		assert.Contains(t, out, "body")
	}
	// Without a body the command name is printed instead.
	assert.Contains(t, formatCommandColor("find", ""), "find")
}
