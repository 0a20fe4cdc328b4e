package handler

import (
	"context"
	"errors"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"pension-estimator/internal/engine"
	"pension-estimator/internal/estimator"
	"pension-estimator/internal/model"
	"pension-estimator/internal/options"
	"pension-estimator/internal/storage"
)

const (
	calculationsPrefix = "/calculations/"
	storeTimeout       = 5 * time.Second
)

type Handler struct {
	engine    *engine.Engine
	calc      *estimator.Calculator
	store     storage.ResultStore
	logger    *zap.Logger
	startedAt time.Time
}

func New(eng *engine.Engine, calc *estimator.Calculator, store storage.ResultStore, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		engine:    eng,
		calc:      calc,
		store:     store,
		logger:    logger,
		startedAt: time.Now(),
	}
}

// Handle routes a request. It satisfies fasthttp.RequestHandler.
func (h *Handler) Handle(ctx *fasthttp.RequestCtx) {
	path := string(ctx.Path())

	switch {
	case path == "/calculate":
		h.post(ctx, h.handleCalculation)
	case path == "/estimate":
		h.post(ctx, h.handleEstimate)
	case path == "/reconcile":
		h.post(ctx, h.handleReconcile)
	case path == "/healthz":
		h.get(ctx, h.handleHealth)
	case strings.HasPrefix(path, calculationsPrefix):
		h.get(ctx, h.handleGetCalculation)
	default:
		writeError(ctx, fasthttp.StatusNotFound, "", "Not found")
	}
}

func (h *Handler) post(ctx *fasthttp.RequestCtx, next fasthttp.RequestHandler) {
	if !ctx.IsPost() {
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "", "Method not allowed")
		return
	}
	next(ctx)
}

func (h *Handler) get(ctx *fasthttp.RequestCtx, next fasthttp.RequestHandler) {
	if !ctx.IsGet() {
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "", "Method not allowed")
		return
	}
	next(ctx)
}

func (h *Handler) handleCalculation(ctx *fasthttp.RequestCtx) {
	var req model.CalculationRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "", "Invalid request body: "+err.Error())
		return
	}

	if len(req.CalculationInstructions.Steps) == 0 {
		writeError(ctx, fasthttp.StatusBadRequest, "", "At least one step is required")
		return
	}

	resp := h.engine.Process(&req)

	body, err := json.Marshal(resp)
	if err != nil {
		h.logger.Error("encode calculation response", zap.Error(err))
		writeError(ctx, fasthttp.StatusInternalServerError, "", "Failed to encode response")
		return
	}

	storeCtx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	if err := h.store.Save(storeCtx, storage.Record{
		CalculationID: resp.CalculationMetadata.CalculationID,
		TenantID:      resp.CalculationMetadata.TenantID,
		Blob:          body,
	}); err != nil {
		// The response is still returned; only later retrieval is lost.
		h.logger.Warn("store calculation result",
			zap.String("calculation_id", resp.CalculationMetadata.CalculationID),
			zap.Error(err),
		)
	}

	ctx.SetContentType("application/json")
	ctx.SetBody(body)
}

func (h *Handler) handleEstimate(ctx *fasthttp.RequestCtx) {
	var in model.PensionInput
	if err := json.Unmarshal(ctx.PostBody(), &in); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "", "Invalid request body: "+err.Error())
		return
	}

	res, err := h.calc.Calculate(in)
	if err != nil {
		h.writeCalculationError(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, res)
}

func (h *Handler) handleReconcile(ctx *fasthttp.RequestCtx) {
	var req model.ReconcileRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "", "Invalid request body: "+err.Error())
		return
	}

	rec, err := options.Reconcile(req.OptionA, req.PublishedOptionC)
	if err != nil {
		h.writeCalculationError(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, rec)
}

func (h *Handler) handleGetCalculation(ctx *fasthttp.RequestCtx) {
	id := strings.TrimPrefix(string(ctx.Path()), calculationsPrefix)
	if id == "" || strings.Contains(id, "/") {
		writeError(ctx, fasthttp.StatusNotFound, "", "Not found")
		return
	}

	storeCtx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	rec, err := h.store.Get(storeCtx, id)
	// A result saved for another tenant is reported as missing.
	if tenant := ctx.QueryArgs().Peek("tenant_id"); err == nil && len(tenant) > 0 && string(tenant) != rec.TenantID {
		err = storage.ErrNotFound
	}
	if errors.Is(err, storage.ErrNotFound) {
		writeError(ctx, fasthttp.StatusNotFound, "CALCULATION_NOT_FOUND", "No calculation with id "+id)
		return
	}
	if err != nil {
		h.logger.Error("load calculation result", zap.String("calculation_id", id), zap.Error(err))
		writeError(ctx, fasthttp.StatusInternalServerError, "", "Failed to load calculation")
		return
	}

	ctx.SetContentType("application/json")
	ctx.SetBody(rec.Blob)
}

func (h *Handler) handleHealth(ctx *fasthttp.RequestCtx) {
	writeJSON(ctx, fasthttp.StatusOK, map[string]any{
		"status":    "ok",
		"uptime":    time.Since(h.startedAt).String(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handler) writeCalculationError(ctx *fasthttp.RequestCtx, err error) {
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		writeJSON(ctx, fasthttp.StatusUnprocessableEntity, model.ErrorResponse{
			Status:  fasthttp.StatusUnprocessableEntity,
			Code:    verr.Code,
			Field:   verr.Field,
			Message: verr.Message,
		})
		return
	}
	h.logger.Error("calculation failed", zap.Error(err))
	writeError(ctx, fasthttp.StatusInternalServerError, "", "Calculation failed")
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		ctx.Error(`{"status":500,"message":"Failed to encode response"}`, fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}

func writeError(ctx *fasthttp.RequestCtx, status int, code, message string) {
	writeJSON(ctx, status, model.ErrorResponse{
		Status:  status,
		Code:    code,
		Message: message,
	})
}
