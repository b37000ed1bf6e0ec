package service

import (
	"context"
	"sort"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"

	"todofront/internal/core/domain"
	"todofront/internal/core/model/request"
	"todofront/internal/core/port"
	tel "todofront/internal/core/telemetry"
)

// TodoRelay gates submissions through the validator and forwards them to the backend.
type TodoRelay struct {
	backend   port.TodoBackend
	validator port.Validator
	telemetry port.Telemetry
	logger    *otelzap.Logger
}

func NewTodoRelay(backend port.TodoBackend, validator port.Validator, telemetry port.Telemetry, logger *otelzap.Logger) *TodoRelay {
	if telemetry == nil {
		telemetry = tel.NewNoOpProbe()
	}

	if logger == nil {
		logger = otelzap.New(zap.NewNop())
	}

	return &TodoRelay{
		backend:   backend,
		validator: validator,
		telemetry: telemetry,
		logger:    logger,
	}
}

func (r *TodoRelay) Create(ctx context.Context, raw domain.RawInput) (domain.CreateResult, error) {
	ctx, span := r.telemetry.StartRelaySpan(ctx, "create", nil)
	defer span.End()

	input, fieldErrors := r.validator.Validate(raw)

	if fieldErrors.HasErrors() {
		fields := make([]string, 0, len(fieldErrors))
		for field := range fieldErrors {
			fields = append(fields, field)
		}
		sort.Strings(fields)

		r.telemetry.RecordValidationFailure(ctx, fields)

		return domain.CreateResult{FieldErrors: fieldErrors}, nil
	}

	op := tel.StartOperation(r.telemetry, ctx, "create")

	r.logger.Ctx(ctx).Info("Adding todo",
		zap.String("title", input.Title),
		zap.String("category", input.Category),
		zap.Bool("has_due_date", input.DueDate != nil))

	err := r.backend.CreateTodo(ctx, request.NewCreateTodo(input))
	op.End(err)

	if err != nil {
		span.RecordError(err)
		span.SetStatus("error", err.Error())
		return domain.CreateResult{}, err
	}

	return domain.CreateResult{Success: true}, nil
}

func (r *TodoRelay) List(ctx context.Context) ([]domain.TodoWire, error) {
	ctx, span := r.telemetry.StartRelaySpan(ctx, "list", nil)
	defer span.End()

	op := tel.StartOperation(r.telemetry, ctx, "list")

	todos, err := r.backend.ListTodos(ctx)
	op.End(err)

	if err != nil {
		span.RecordError(err)
		span.SetStatus("error", err.Error())
		return nil, err
	}

	span.SetAttributes(map[string]interface{}{"todo.count": len(todos)})

	return todos, nil
}

func (r *TodoRelay) Delete(ctx context.Context, id string) error {
	ctx, span := r.telemetry.StartRelaySpan(ctx, "delete", map[string]interface{}{"todo.id": id})
	defer span.End()

	if id == "" {
		return domain.ErrEmptyID
	}

	op := tel.StartOperation(r.telemetry, ctx, "delete")

	err := r.backend.DeleteTodo(ctx, id)
	op.End(err)

	if err != nil {
		span.RecordError(err)
		span.SetStatus("error", err.Error())
		return err
	}

	return nil
}
