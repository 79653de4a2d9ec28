package calcapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"go-chi-calculator/internal/calculator"
	"go-chi-calculator/internal/handlers"
	"go-chi-calculator/internal/observability"
	"go-chi-calculator/internal/session"
)

// tracer is the calculator's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("calculator")

// Handler serves the calculator API over a session store.
type Handler struct {
	store *session.Store
}

func NewHandler(store *session.Store) *Handler {
	return &Handler{store: store}
}

// ---------------------------------------------------------------------------
// Handlers: sessions
// ---------------------------------------------------------------------------

// CreateSession handles POST /calculator/sessions
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)

	ctx, span := tracer.Start(ctx, "calculator.session.create")
	defer span.End()

	sess, err := h.store.Create()
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "create", "session limit reached", err, http.StatusServiceUnavailable, w)
		return
	}

	span.SetAttributes(attribute.String("session.id", sess.ID))
	span.SetStatus(codes.Ok, "")

	logger.Info("calculator session created",
		zap.String("session_id", sess.ID),
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
	)

	handlers.WriteJSON(w, http.StatusCreated, sessionResponse(sess))
}

// GetSession handles GET /calculator/sessions/{sessionID}
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	id := chi.URLParam(r, "sessionID")

	ctx, span := tracer.Start(ctx, "calculator.session.get",
		trace.WithAttributes(attribute.String("session.id", id)),
	)
	defer span.End()

	sess, err := h.store.Get(id)
	if err != nil {
		h.recordStoreError(ctx, span, logger, "get", id, err, w)
		return
	}

	span.SetStatus(codes.Ok, "")
	handlers.WriteJSON(w, http.StatusOK, sessionResponse(sess))
}

// DeleteSession handles DELETE /calculator/sessions/{sessionID}
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	id := chi.URLParam(r, "sessionID")

	ctx, span := tracer.Start(ctx, "calculator.session.delete",
		trace.WithAttributes(attribute.String("session.id", id)),
	)
	defer span.End()

	if err := h.store.Delete(id); err != nil {
		h.recordStoreError(ctx, span, logger, "delete", id, err, w)
		return
	}

	span.SetStatus(codes.Ok, "")
	logger.Info("calculator session ended",
		zap.String("session_id", id),
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
	)

	w.WriteHeader(http.StatusNoContent)
}

// DispatchEvent handles POST /calculator/sessions/{sessionID}/events
func (h *Handler) DispatchEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	id := chi.URLParam(r, "sessionID")

	ctx, span := tracer.Start(ctx, "calculator.dispatch",
		trace.WithAttributes(attribute.String("session.id", id)),
	)
	defer span.End()

	var msg calculator.EventMessage
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "dispatch", "invalid request body", err, http.StatusBadRequest, w, zap.String("session_id", id))
		return
	}

	e, err := msg.Event()
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "dispatch", err.Error(), err, http.StatusBadRequest, w, zap.String("session_id", id))
		return
	}

	h.dispatch(w, r.WithContext(ctx), span, logger, id, e)
}

// DispatchKeys handles POST /calculator/sessions/{sessionID}/keys
func (h *Handler) DispatchKeys(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	id := chi.URLParam(r, "sessionID")

	ctx, span := tracer.Start(ctx, "calculator.dispatch",
		trace.WithAttributes(attribute.String("session.id", id)),
	)
	defer span.End()

	var req KeysRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "keys", "invalid request body", err, http.StatusBadRequest, w, zap.String("session_id", id))
		return
	}

	events, err := calculator.ParseKeys(req.Keys)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "keys", err.Error(), err, http.StatusBadRequest, w, zap.String("session_id", id))
		return
	}

	span.SetAttributes(attribute.String("calculator.keys", req.Keys))
	h.dispatch(w, r.WithContext(ctx), span, logger, id, events...)
}

// dispatch is the shared implementation for applying events to a session.
// It records one span event, metric sample and log line per applied event.
func (h *Handler) dispatch(w http.ResponseWriter, r *http.Request, span trace.Span, logger *zap.Logger, id string, events ...calculator.Event) {
	ctx := r.Context()
	requestID := observability.RequestIDFromContext(ctx)

	span.SetAttributes(attribute.Int("calculator.events", len(events)))

	// --- Apply (timed for histogram) ---
	start := time.Now()
	res, err := h.store.Dispatch(id, events...)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

	if err != nil {
		h.recordStoreError(ctx, span, logger, "dispatch", id, err, w)
		return
	}

	eventHistogram.Record(ctx, elapsed, metric.WithAttributes(attribute.Int("events", len(events))))

	prev := res.Before
	for i, e := range events {
		next := res.Steps[i]
		changed := next != prev

		eventsCounter.Add(ctx, 1, metric.WithAttributes(
			attribute.String("event", e.Kind()),
			attribute.Bool("changed", changed),
		))
		recordEvaluation(ctx, prev, e, next)

		span.AddEvent("calculator.event", trace.WithAttributes(
			attribute.Int("index", i),
			attribute.String("event", e.Kind()),
			attribute.Bool("changed", changed),
		))

		logger.Debug("calculator event applied",
			zap.String("session_id", id),
			zap.Int("index", i),
			zap.String("event", e.Kind()),
			zap.Bool("changed", changed),
		)
		prev = next
	}

	span.SetStatus(codes.Ok, "")

	logger.Info("calculator events dispatched",
		zap.String("session_id", id),
		zap.Int("events", len(events)),
		zap.Bool("changed", res.Changed),
		zap.String("request_id", requestID),
		zap.Float64("duration_ms", elapsed),
	)

	handlers.WriteJSON(w, http.StatusOK, EventResponse{
		SessionResponse: sessionResponse(res.Session),
		Changed:         res.Changed,
	})
}

// ---------------------------------------------------------------------------
// Handlers: stateless
// ---------------------------------------------------------------------------

// Evaluate handles POST /calculator/evaluate
func (h *Handler) Evaluate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "calculator.evaluate",
		trace.WithAttributes(attribute.String("request.id", requestID)),
	)
	defer span.End()

	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "evaluate", "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	// Compute panics on an undefined operation; callers get a 400 instead.
	if !req.Operation.Valid() {
		err := fmt.Errorf("%w: %q", calculator.ErrInvalidOperation, string(req.Operation))
		observability.RecordError(ctx, span, logger, errorCounter, "evaluate", err.Error(), err, http.StatusBadRequest, w)
		return
	}

	result := calculator.Compute(req.Previous, req.Current, req.Operation)

	attrs := metric.WithAttributes(attribute.String("operation", string(req.Operation)))
	evalCounter.Add(ctx, 1, attrs)
	if v, ok := numericResult(result); ok {
		resultGauge.Record(ctx, v, attrs)
	}

	span.SetAttributes(
		attribute.String("calculator.operation", string(req.Operation)),
		attribute.String("calculator.result", result),
	)
	span.SetStatus(codes.Ok, "")

	logger.Info("calculator evaluation completed",
		zap.Stringer("previous", req.Previous),
		zap.Stringer("current", req.Current),
		zap.String("operation", string(req.Operation)),
		zap.String("result", result),
		zap.String("request_id", requestID),
	)

	handlers.WriteJSON(w, http.StatusOK, EvaluateResponse{
		Previous:  req.Previous,
		Current:   req.Current,
		Operation: req.Operation,
		Result:    result,
	})
}

// Format handles POST /calculator/format
func (h *Handler) Format(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)

	ctx, span := tracer.Start(ctx, "calculator.format")
	defer span.End()

	var req FormatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "format", "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	span.SetStatus(codes.Ok, "")
	handlers.WriteJSON(w, http.StatusOK, FormatResponse{
		Operand:   req.Operand,
		Formatted: calculator.Format(req.Operand),
	})
}

// ---------------------------------------------------------------------------
// Handler: replay (nested spans)
// ---------------------------------------------------------------------------

// Replay handles POST /calculator/replay. It runs a sequence of events from the
// initial state without a session, creating a child span for every step.
func (h *Handler) Replay(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	// Parent span for the entire replay
	ctx, span := tracer.Start(ctx, "calculator.replay",
		trace.WithAttributes(
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	var req ReplayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "replay", "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	tape := calculator.Tape{Messages: req.Events, Keys: req.Keys}
	events, err := tape.Events()
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "replay", err.Error(), err, http.StatusBadRequest, w)
		return
	}

	if len(events) == 0 {
		observability.RecordError(ctx, span, logger, errorCounter, "replay", "no events provided", errors.New("events and keys are empty"), http.StatusBadRequest, w)
		return
	}

	span.SetAttributes(attribute.Int("replay.steps_count", len(events)))

	state := calculator.Initial()
	steps := make([]ReplayStep, 0, len(events))

	for i, e := range events {
		// --- Child span per step ---
		_, stepSpan := tracer.Start(ctx, fmt.Sprintf("calculator.replay.step.%d.%s", i, e.Kind()),
			trace.WithAttributes(
				attribute.Int("replay.step.index", i),
				attribute.String("replay.step.event", e.Kind()),
			),
		)

		prev := state
		state = calculator.Reduce(state, e)
		changed := state != prev

		eventsCounter.Add(ctx, 1, metric.WithAttributes(
			attribute.String("event", e.Kind()),
			attribute.Bool("changed", changed),
		))
		recordEvaluation(ctx, prev, e, state)

		stepSpan.SetAttributes(attribute.Bool("replay.step.changed", changed))
		stepSpan.SetStatus(codes.Ok, "")
		stepSpan.End()

		steps = append(steps, ReplayStep{
			Event:   calculator.MessageOf(e),
			State:   state,
			Changed: changed,
		})
	}

	display := calculator.Render(state)

	span.AddEvent("replay.complete", trace.WithAttributes(
		attribute.String("display.current", display.Current),
		attribute.Int("total_steps", len(events)),
	))
	span.SetStatus(codes.Ok, "")

	logger.Info("calculator replay completed",
		zap.Int("steps", len(events)),
		zap.String("current", display.Current),
		zap.String("request_id", requestID),
	)

	handlers.WriteJSON(w, http.StatusOK, ReplayResponse{
		Steps:   steps,
		State:   state,
		Display: display,
	})
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func sessionResponse(sess session.Session) SessionResponse {
	return SessionResponse{
		SessionID: sess.ID,
		State:     sess.State,
		Display:   calculator.Render(sess.State),
	}
}

func (h *Handler) recordStoreError(ctx context.Context, span trace.Span, logger *zap.Logger, opName, id string, err error, w http.ResponseWriter) {
	status := http.StatusInternalServerError
	if errors.Is(err, session.ErrNotFound) {
		status = http.StatusNotFound
	}
	observability.RecordError(ctx, span, logger, errorCounter, opName, err.Error(), err, status, w, zap.String("session_id", id))
}

// recordEvaluation counts the transition from prev to next under e when it
// evaluated a pending operation, either through Evaluate or by chaining a
// new operator onto two operands.
func recordEvaluation(ctx context.Context, prev calculator.State, e calculator.Event, next calculator.State) {
	var result calculator.Operand

	switch e.(type) {
	case calculator.Evaluate:
		result = next.CurrentOperand
	case calculator.ChooseOperation:
		result = next.PreviousOperand
	default:
		return
	}
	if next == prev || !prev.PreviousOperand.Present() || !prev.CurrentOperand.Present() {
		return
	}

	attrs := metric.WithAttributes(attribute.String("operation", string(prev.Operation)))
	evalCounter.Add(ctx, 1, attrs)

	text, _ := result.Text()
	if v, ok := numericResult(text); ok {
		resultGauge.Record(ctx, v, attrs)
	}
}

func numericResult(text string) (float64, bool) {
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
