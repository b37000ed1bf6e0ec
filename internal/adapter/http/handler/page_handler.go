package handler

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	. "todofront/internal/adapter/http/helper"
	"todofront/internal/adapter/http/middleware"
	"todofront/internal/core/domain"
	"todofront/internal/core/port"
	"todofront/internal/core/util"
	"todofront/pkg/config"
	. "todofront/pkg/tracing"
)

//go:embed templates/*.html
var templateFS embed.FS

const displayDate = "Mon Jan 02 2006"

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

type formValues struct {
	Title       string
	Category    string
	Description string
	DueDate     string
}

type todoRow struct {
	ID          int
	Title       string
	Category    string
	Description string
	Due         string
	Overdue     bool
	Created     string
}

type pageData struct {
	View   domain.TodoView
	Rows   []todoRow
	Form   formValues
	Errors map[string]string
}

// PageHandler serves the HTML page: the add form above the session's todo table.
type PageHandler struct {
	relay     port.TodoRelay
	presenter port.Presenter
	Logger    *config.LokiLogger
	now       func() time.Time
}

func NewPageHandler(relay port.TodoRelay, presenter port.Presenter, logger *config.LokiLogger) *PageHandler {
	return &PageHandler{
		relay:     relay,
		presenter: presenter,
		Logger:    logger,
		now:       time.Now,
	}
}

func (h *PageHandler) Index(c *gin.Context) {
	view := h.presenter.Mount(c.Request.Context(), middleware.GetSessionID(c))

	h.render(c, http.StatusOK, view, h.emptyForm(), nil)
}

func (h *PageHandler) Create(c *gin.Context) {
	ctx, span := CreateChildSpan(c.Request.Context(), "handler.page.Create", []attribute.KeyValue{
		attribute.String("handler.operation", "Create"),
		attribute.String("handler.path", c.FullPath()),
	})
	defer span.End()

	session := middleware.GetSessionID(c)

	raw, err := util.RawInputFromRequest(c)
	if err != nil {
		SendBadRequestError(c, "form", "Invalid form data")
		return
	}

	form := formValues{
		Title:       c.PostForm("Title"),
		Category:    c.PostForm("Category"),
		Description: c.PostForm("Description"),
		DueDate:     c.PostForm("DueDate"),
	}

	result, err := h.relay.Create(ctx, raw)

	if err != nil {
		AddSpanError(span, err)

		config.LogError(ctx, h.Logger, err, "Failed to add todo",
			zap.String("session_id", session))

		view := h.presenter.View(ctx, session)
		view.Error = err.Error()

		h.render(c, statusFor(err), view, form, nil)
		return
	}

	if result.FieldErrors.HasErrors() {
		h.render(c, http.StatusUnprocessableEntity, h.presenter.View(ctx, session), form, result.FieldErrors.First())
		return
	}

	view := h.presenter.Refresh(ctx, session)

	h.render(c, http.StatusOK, view, h.emptyForm(), nil)
}

func (h *PageHandler) Delete(c *gin.Context) {
	view := h.presenter.Remove(c.Request.Context(), middleware.GetSessionID(c), c.Param("id"))

	status := http.StatusOK
	if view.HasError() {
		status = http.StatusBadGateway
	}

	h.render(c, status, view, h.emptyForm(), nil)
}

func (h *PageHandler) emptyForm() formValues {
	return formValues{DueDate: h.now().Format(time.DateOnly)}
}

func (h *PageHandler) render(c *gin.Context, status int, view domain.TodoView, form formValues, fieldErrors map[string]string) {
	if fieldErrors == nil {
		fieldErrors = map[string]string{}
	}

	data := pageData{
		View:   view,
		Rows:   h.rows(view.Items),
		Form:   form,
		Errors: fieldErrors,
	}

	var body bytes.Buffer

	err := RenderSpanWrapper(c.Request.Context(), "index", middleware.GetSessionID(c), func(ctx context.Context) error {
		return pageTemplate.Execute(&body, data)
	})

	if err != nil {
		config.LogError(c.Request.Context(), h.Logger, err, "Failed to render page")
		SendInternalError(c, "Failed to render page")
		return
	}

	c.Data(status, "text/html; charset=utf-8", body.Bytes())
}

func (h *PageHandler) rows(items []domain.TodoRecord) []todoRow {
	now := h.now()
	rows := make([]todoRow, 0, len(items))

	for _, item := range items {
		row := todoRow{
			ID:          item.ID,
			Title:       item.Title,
			Category:    item.Category,
			Description: item.DescriptionOrEmpty(),
			Due:         "No due date",
			Overdue:     item.IsOverdue(now),
			Created:     "unknown",
		}

		if item.DueDate != nil {
			row.Due = item.DueDate.Format(displayDate)
		}

		if !item.CreatedAt.IsZero() {
			row.Created = item.CreatedAt.Format(displayDate)
		}

		rows = append(rows, row)
	}

	return rows
}

func statusFor(err error) int {
	if domain.IsBackendFailure(err) {
		return http.StatusBadGateway
	}

	return http.StatusInternalServerError
}

func (r todoRow) DeletePath() string {
	return "/todos/" + strconv.Itoa(r.ID) + "/delete"
}
