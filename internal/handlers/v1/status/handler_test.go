package status

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/finance-tracker/internal/logging"
)

type fakePinger struct {
	err   error
	calls int
}

func (f *fakePinger) Ping(context.Context) error {
	f.calls++
	return f.err
}

func TestHandler_Reachable(t *testing.T) {
	store := &fakePinger{}
	_, api := humatest.New(t)
	NewHandler(store).Register(api)

	for _, path := range []string{"/api/status", "/api/test"} {
		resp := api.Get(path)
		require.Equal(t, http.StatusOK, resp.Code, path)

		var body StatusBody
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
		assert.Equal(t, "Backend is working!", body.Message)
		assert.Equal(t, "ok", body.Database)
	}
	assert.Equal(t, 2, store.calls)
}

func TestHandler_Unreachable(t *testing.T) {
	_, api := humatest.New(t)
	NewHandler(&fakePinger{err: errors.New("server selection timeout")}).Register(api)

	resp := api.Get("/api/status")
	require.Equal(t, http.StatusOK, resp.Code)

	var body StatusBody
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "unreachable", body.Database)
}

func TestHandler_RecordsPingError(t *testing.T) {
	logData := logging.NewLogData(logging.SetupLogging())
	ctx := logging.WithLogData(context.Background(), logData)

	h := NewHandler(&fakePinger{err: errors.New("no reachable servers")})
	out, err := h.handle(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, "unreachable", out.Body.Database)
	assert.Equal(t, "no reachable servers", logData.Log().Data["pingError"])
}
