package gateway

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/yigit/schooladmin/internal/app/models"
	"github.com/yigit/schooladmin/internal/app/services"
	"github.com/yigit/schooladmin/internal/pkg/apperrors"
	"github.com/yigit/schooladmin/internal/pkg/logger"
	"github.com/yigit/schooladmin/internal/pkg/metrics"
)

type handlerFunc func(ctx context.Context, req Request) (interface{}, error)

// Facade dispatches parsed requests to the services
type Facade struct {
	svc      *services.Services
	handlers map[Operation]handlerFunc
	log      zerolog.Logger
}

// New builds the facade and its dispatch table
func New(svc *services.Services) *Facade {
	f := &Facade{
		svc: svc,
		log: logger.Component("gateway"),
	}
	f.handlers = f.routes()
	return f
}

// Handles reports whether op has a handler
func (f *Facade) Handles(op Operation) bool {
	_, ok := f.handlers[op]
	return ok
}

// Dispatch runs the handler bound to req.Op
func (f *Facade) Dispatch(ctx context.Context, req Request) (interface{}, error) {
	h, ok := f.handlers[req.Op]
	if !ok {
		return nil, apperrors.NewCustomError(apperrors.ErrUnsupportedOperation,
			fmt.Sprintf("Operation %s is not supported", req.Op))
	}

	started := time.Now()
	out, err := h(ctx, req)
	metrics.ObserveOperation(req.Op.String(), started, err)
	if err != nil {
		f.log.Debug().Err(err).Str("operation", req.Op.String()).Str("id", req.ID).Msg("operation failed")
	}
	return out, err
}

// Fetch performs a GET against a legacy path
func (f *Facade) Fetch(ctx context.Context, actor models.Actor, path string) (interface{}, error) {
	return f.call(ctx, http.MethodGet, actor, path, nil)
}

// Create performs a POST against a legacy path
func (f *Facade) Create(ctx context.Context, actor models.Actor, path string, payload interface{}) (interface{}, error) {
	return f.call(ctx, http.MethodPost, actor, path, payload)
}

// Update performs a PUT against a legacy path
func (f *Facade) Update(ctx context.Context, actor models.Actor, path string, payload interface{}) (interface{}, error) {
	return f.call(ctx, http.MethodPut, actor, path, payload)
}

// Remove performs a DELETE against a legacy path
func (f *Facade) Remove(ctx context.Context, actor models.Actor, path string) error {
	_, err := f.call(ctx, http.MethodDelete, actor, path, nil)
	return err
}

func (f *Facade) call(ctx context.Context, method string, actor models.Actor, path string, payload interface{}) (interface{}, error) {
	req, err := ParseRequest(method, path)
	if err != nil {
		return nil, err
	}
	if req.Payload, err = encodePayload(payload); err != nil {
		return nil, err
	}
	req.Actor = actor
	return f.Dispatch(ctx, req)
}

func parseYearLevel(raw string) (models.YearLevel, error) {
	y, err := models.ParseYearLevel(raw)
	if err != nil {
		return "", apperrors.NewValidationError(fmt.Sprintf("Invalid yearLevel %q", raw))
	}
	return y, nil
}

func parseDepartment(raw string) (models.Department, error) {
	switch d := models.Department(raw); d {
	case "", models.DepartmentTeaching, models.DepartmentAdministrative:
		return d, nil
	}
	return "", apperrors.NewValidationError(fmt.Sprintf("Invalid department %q", raw))
}

func parseBool(raw string) bool {
	b, err := strconv.ParseBool(raw)
	return err == nil && b
}
