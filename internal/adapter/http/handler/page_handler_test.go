package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/suite"

	. "todofront/pkg/test"

	"todofront/internal/adapter/http/validation"
	"todofront/internal/adapter/store/memory"
	"todofront/internal/core/domain"
	"todofront/internal/core/model/request"
	"todofront/internal/core/service"
	"todofront/pkg/config"
	factory "todofront/pkg/test/factory"
)

type PageHandlerSuite struct {
	suite.Suite
	Backend *FakeBackend
	Page    *PageHandler
	Router  *gin.Engine
}

var today = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func (s *PageHandlerSuite) SetupTest() {
	s.Backend = &FakeBackend{}

	relay := service.NewTodoRelay(s.Backend, validation.NewTodoValidator(), nil, nil)
	presenter := service.NewTodoPresenter(relay, memory.NewViewStore(time.Minute), nil, nil)
	logger := config.NewNopLogger()

	s.Page = NewPageHandler(relay, presenter, logger)
	s.Page.now = func() time.Time { return today }

	s.Router = setupTestRouter(NewTodoHandler(relay, presenter, logger), s.Page)
}

func TestPageHandlerSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(PageHandlerSuite))
}

func (s *PageHandlerSuite) get(path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", path, nil)
	s.Router.ServeHTTP(w, req)
	return w
}

func (s *PageHandlerSuite) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	s.Router.ServeHTTP(w, req)
	return w
}

func (s *PageHandlerSuite) TestIndex_RendersTable() {
	s.Backend.ListFn = func(ctx context.Context) ([]domain.TodoWire, error) {
		return []domain.TodoWire{
			factory.NewTodoWire(map[string]any{
				"ID":        1,
				"Title":     "Pay rent",
				"Category":  "Home",
				"CreatedAt": "2025-05-30T10:00:00Z",
				"DueDate":   "2025-05-31T00:00:00Z",
			}),
			factory.NewTodoWire(map[string]any{
				"ID":          2,
				"Title":       "Plan trip",
				"Category":    "Leisure",
				"Description": "summer",
				"CreatedAt":   "garbage",
			}),
		}, nil
	}

	w := s.get("/")

	Expect(w.Code).To(Equal(http.StatusOK))
	Expect(w.Header().Get("Content-Type")).To(ContainSubstring("text/html"))

	body := w.Body.String()
	Expect(body).To(ContainSubstring("Todo List"))
	Expect(body).To(ContainSubstring(`<span class="overdue">Sat May 31 2025</span>`))
	Expect(body).To(ContainSubstring("Fri May 30 2025"))
	Expect(body).To(ContainSubstring("No due date"))
	Expect(body).To(ContainSubstring("unknown"))
	Expect(body).To(ContainSubstring(`action="/todos/2/delete"`))
	Expect(body).To(ContainSubstring(`value="2025-06-01"`))
	Expect(body).ToNot(ContainSubstring("No todos yet."))
	Expect(s.Backend.ListCalls()).To(Equal(1))
}

func (s *PageHandlerSuite) TestIndex_EmptyState() {
	w := s.get("/")

	Expect(w.Code).To(Equal(http.StatusOK))
	Expect(w.Body.String()).To(ContainSubstring("No todos yet."))
	Expect(w.Body.String()).ToNot(ContainSubstring("Todo List"))
}

func (s *PageHandlerSuite) TestIndex_ShowsBackendError() {
	s.Backend.ListFn = func(ctx context.Context) ([]domain.TodoWire, error) {
		return nil, &domain.BackendError{Op: "list todos", StatusCode: 500, Body: "db down"}
	}

	w := s.get("/")

	Expect(w.Code).To(Equal(http.StatusOK))
	Expect(w.Body.String()).To(ContainSubstring("Error: HTTP 500: db down"))
	Expect(w.Body.String()).ToNot(ContainSubstring("No todos yet."))
}

func (s *PageHandlerSuite) TestCreate_FieldErrorsKeepForm() {
	w := s.postForm("/todos", url.Values{
		"Title":       {""},
		"Category":    {""},
		"Description": {"keep me"},
	})

	Expect(w.Code).To(Equal(http.StatusUnprocessableEntity))

	body := w.Body.String()
	Expect(body).To(ContainSubstring("Title is required."))
	Expect(body).To(ContainSubstring("Category is required."))
	Expect(body).To(ContainSubstring(`value="keep me"`))
	Expect(s.Backend.Created()).To(BeEmpty())
}

func (s *PageHandlerSuite) TestCreate_SuccessClearsFormAndRefreshes() {
	s.Backend.ListFn = func(ctx context.Context) ([]domain.TodoWire, error) {
		return []domain.TodoWire{factory.NewTodoWire(map[string]any{"ID": 1, "Title": "Buy milk"})}, nil
	}

	w := s.postForm("/todos", url.Values{
		"Title":    {"Buy milk"},
		"Category": {"Errand"},
		"DueDate":  {"2025-06-03"},
	})

	Expect(w.Code).To(Equal(http.StatusOK))

	created := s.Backend.Created()
	Expect(created).To(HaveLen(1))
	Expect(created[0].Title).To(Equal("Buy milk"))
	Expect(created[0].Category).To(Equal("Errand"))
	Expect(created[0].Description).To(BeNil())
	Expect(*created[0].DueDate).To(Equal("2025-06-03T00:00:00.000Z"))
	Expect(s.Backend.ListCalls()).To(Equal(1))

	body := w.Body.String()
	Expect(body).To(ContainSubstring("Buy milk"))
	Expect(body).To(ContainSubstring(`name="Title" value=""`))
}

func (s *PageHandlerSuite) TestCreate_BackendFailure() {
	s.Backend.CreateFn = func(ctx context.Context, body request.CreateTodo) error {
		return &domain.TransportError{Op: "post /api/todo", Err: context.DeadlineExceeded}
	}

	w := s.postForm("/todos", url.Values{
		"Title":    {"Buy milk"},
		"Category": {"Errand"},
	})

	Expect(w.Code).To(Equal(http.StatusBadGateway))
	Expect(w.Body.String()).To(ContainSubstring("context deadline exceeded"))
	Expect(w.Body.String()).To(ContainSubstring(`value="Buy milk"`))
}

func (s *PageHandlerSuite) TestDelete_RendersRefreshedPage() {
	s.Backend.ListFn = func(ctx context.Context) ([]domain.TodoWire, error) {
		return []domain.TodoWire{}, nil
	}

	w := s.postForm("/todos/3/delete", url.Values{})

	Expect(w.Code).To(Equal(http.StatusOK))
	Expect(s.Backend.Deleted()).To(Equal([]string{"3"}))
	Expect(w.Body.String()).To(ContainSubstring("No todos yet."))
}

func (s *PageHandlerSuite) TestDelete_Failure() {
	s.Backend.DeleteFn = func(ctx context.Context, id string) error {
		return &domain.BackendError{Op: "delete todo", StatusCode: 500, Body: "locked"}
	}

	w := s.postForm("/todos/3/delete", url.Values{})

	Expect(w.Code).To(Equal(http.StatusBadGateway))
	Expect(w.Body.String()).To(ContainSubstring("Error: HTTP 500: locked"))
}
