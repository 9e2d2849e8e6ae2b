package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/blackwell-systems/taskwatch/internal/config"
	"github.com/blackwell-systems/taskwatch/internal/report"
	"github.com/blackwell-systems/taskwatch/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testNow   = time.Date(2024, 3, 15, 14, 0, 0, 0, time.UTC)
	testToday = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
)

func newTestServer(t *testing.T) (*Server, *store.DB, *store.User) {
	t.Helper()
	db, err := store.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	u, err := db.CreateUser("alice", "", "hash")
	require.NoError(t, err)

	windows := report.Windows{StatsDays: 7, StreakDays: 30, StreakMode: config.StreakLogged}
	s := NewServer(db, u.ID, windows, func() time.Time { return testNow }, "test")
	return s, db, u
}

// runLines feeds lines to Run and returns the response lines.
func runLines(t *testing.T, s *Server, lines ...string) []string {
	t.Helper()
	var out bytes.Buffer
	err := s.Run(context.Background(), strings.NewReader(strings.Join(lines, "\n")+"\n"), &out)
	require.NoError(t, err)

	text := strings.TrimSpace(out.String())
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

func TestRun_Initialize(t *testing.T) {
	s, _, _ := newTestServer(t)

	resp := runLines(t, s, `{"jsonrpc":"2.0","id":1,"method":"initialize"}`)
	require.Len(t, resp, 1)

	var parsed struct {
		ID     int `json:"id"`
		Result struct {
			ProtocolVersion string `json:"protocolVersion"`
			ServerInfo      struct {
				Name    string `json:"name"`
				Version string `json:"version"`
			} `json:"serverInfo"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(resp[0]), &parsed))
	assert.Equal(t, 1, parsed.ID)
	assert.Equal(t, protocolVersion, parsed.Result.ProtocolVersion)
	assert.Equal(t, "taskwatch", parsed.Result.ServerInfo.Name)
	assert.Equal(t, "test", parsed.Result.ServerInfo.Version)
}

func TestRun_ToolsList(t *testing.T) {
	s, _, _ := newTestServer(t)

	resp := runLines(t, s, `{"jsonrpc":"2.0","id":2,"method":"tools/list"}`)
	require.Len(t, resp, 1)

	var parsed struct {
		Result struct {
			Tools []toolListEntry `json:"tools"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(resp[0]), &parsed))

	var names []string
	for _, tool := range parsed.Result.Tools {
		names = append(names, tool.Name)
		assert.NotEmpty(t, tool.Description)
		assert.True(t, json.Valid(tool.InputSchema), "schema for %s", tool.Name)
	}
	assert.Equal(t, []string{"get_streak", "get_stats", "get_recommendations", "list_tasks", "list_habits"}, names)
}

func TestRun_NotificationGetsNoReply(t *testing.T) {
	s, _, _ := newTestServer(t)

	resp := runLines(t, s,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		`{"jsonrpc":"2.0","id":3,"method":"ping"}`,
	)
	require.Len(t, resp, 1)
	assert.Contains(t, resp[0], `"id":3`)
}

func TestRun_Errors(t *testing.T) {
	s, _, _ := newTestServer(t)

	resp := runLines(t, s,
		`not json`,
		`{"jsonrpc":"2.0","id":4,"method":"resources/list"}`,
		`{"jsonrpc":"2.0","id":5,"method":"tools/call","params":"oops"}`,
	)
	require.Len(t, resp, 3)
	assert.Contains(t, resp[0], `"code":-32700`)
	assert.Contains(t, resp[1], `"code":-32601`)
	assert.Contains(t, resp[2], `"code":-32602`)
}

func TestRun_UnknownTool(t *testing.T) {
	s, _, _ := newTestServer(t)

	resp := runLines(t, s, `{"jsonrpc":"2.0","id":6,"method":"tools/call","params":{"name":"nope"}}`)
	require.Len(t, resp, 1)

	var parsed struct {
		Result toolsCallResult `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(resp[0]), &parsed))
	assert.True(t, parsed.Result.IsError)
	assert.Equal(t, "unknown tool: nope", parsed.Result.Content[0].Text)
}

func TestRun_CanceledContext(t *testing.T) {
	s, _, _ := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	assert.NoError(t, s.Run(ctx, strings.NewReader(""), &out))
}
