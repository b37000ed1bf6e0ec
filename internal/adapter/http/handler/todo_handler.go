package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	. "todofront/internal/adapter/http/helper"
	"todofront/internal/adapter/http/middleware"
	"todofront/internal/core/port"
	"todofront/internal/core/util"
	"todofront/pkg/config"
	. "todofront/pkg/tracing"
)

// TodoHandler is the JSON face of the relay and the presenter.
type TodoHandler struct {
	relay     port.TodoRelay
	presenter port.Presenter
	Logger    *config.LokiLogger
}

func NewTodoHandler(relay port.TodoRelay, presenter port.Presenter, logger *config.LokiLogger) *TodoHandler {
	return &TodoHandler{
		relay:     relay,
		presenter: presenter,
		Logger:    logger,
	}
}

func (t *TodoHandler) GetAllTodos(c *gin.Context) {
	ctx, span := CreateChildSpan(c.Request.Context(), "handler.todo.GetAllTodos", []attribute.KeyValue{
		attribute.String("handler.operation", "GetAllTodos"),
		attribute.String("handler.path", c.FullPath()),
	})
	defer span.End()

	view := t.presenter.Refresh(ctx, middleware.GetSessionID(c))

	status := http.StatusOK
	if view.HasError() {
		status = http.StatusBadGateway
	}
	AddHTTPAttributes(span, c.Request.Method, c.FullPath(), status)

	SendView(c, view)
}

func (t *TodoHandler) CreateTodo(c *gin.Context) {
	ctx, span := CreateChildSpan(c.Request.Context(), "handler.todo.CreateTodo", []attribute.KeyValue{
		attribute.String("handler.operation", "CreateTodo"),
		attribute.String("handler.path", c.FullPath()),
	})
	defer span.End()

	raw, err := util.RawInputFromRequest(c)

	if err != nil {
		SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	result, err := t.relay.Create(ctx, raw)

	if err != nil {
		AddSpanError(span, err)

		config.LogError(ctx, t.Logger, err, "Failed to add todo",
			zap.String("session_id", middleware.GetSessionID(c)))

		SendRelayError(c, err)
		return
	}

	if result.FieldErrors.HasErrors() {
		t.Logger.Logger.Ctx(ctx).Debug("Todo rejected by validation",
			zap.Any("fields", result.FieldErrors))
	}

	SendCreateResult(c, result)
}

func (t *TodoHandler) DeleteTodo(c *gin.Context) {
	ctx, span := CreateChildSpan(c.Request.Context(), "handler.todo.DeleteTodo", []attribute.KeyValue{
		attribute.String("handler.operation", "DeleteTodo"),
		attribute.String("todo.id", c.Param("id")),
	})
	defer span.End()

	view := t.presenter.Remove(ctx, middleware.GetSessionID(c), c.Param("id"))

	status := http.StatusOK
	if view.HasError() {
		status = http.StatusBadGateway
	}
	AddHTTPAttributes(span, c.Request.Method, c.FullPath(), status)

	SendView(c, view)
}
