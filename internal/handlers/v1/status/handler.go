package status

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-tracker/internal/logging"
)

const (
	databaseOK          = "ok"
	databaseUnreachable = "unreachable"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	Store pinger
}

func NewHandler(store pinger) *Handler {
	return &Handler{Store: store}
}

type StatusBody struct {
	Message  string `json:"message"`
	Database string `json:"database" enum:"ok,unreachable"`
}

type StatusOutput struct {
	Body StatusBody
}

// Register mounts the probe at /api/status and at the legacy /api/test path.
func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-status",
		Method:      http.MethodGet,
		Path:        "/api/status",
		Summary:     "Service status",
		Tags:        []string{"Status"},
	}, h.handle)

	huma.Register(api, huma.Operation{
		OperationID: "get-test",
		Method:      http.MethodGet,
		Path:        "/api/test",
		Summary:     "Service status (legacy path)",
		Tags:        []string{"Status"},
		Deprecated:  true,
	}, h.handle)
}

// handle always answers 200; an unreachable store is reported in the body.
func (h *Handler) handle(ctx context.Context, _ *struct{}) (*StatusOutput, error) {
	database := databaseOK
	if err := h.Store.Ping(ctx); err != nil {
		database = databaseUnreachable
		if logData := logging.GetLogData(ctx); logData != nil {
			logData.AddData("pingError", err.Error())
		}
	}

	return &StatusOutput{Body: StatusBody{
		Message:  "Backend is working!",
		Database: database,
	}}, nil
}
