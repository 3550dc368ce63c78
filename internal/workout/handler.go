package workout

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymxp/internal/gamification"
	"github.com/2beens/gymxp/internal/middleware"
	"github.com/2beens/gymxp/internal/pose"
	"github.com/2beens/gymxp/internal/repcount"
	"github.com/2beens/gymxp/internal/telemetry/metrics"
	"github.com/2beens/gymxp/internal/telemetry/tracing"
	"github.com/2beens/gymxp/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=workout_test

const (
	maxListPageSize = 100
	maxListPage     = 10000

	streamReadLimit = 4 << 20
	streamWriteWait = 10 * time.Second
	streamReadIdle  = 2 * time.Minute
)

type sessionManager interface {
	Start(ctx context.Context, userID, analyzerName string) (*Session, error)
	PushFrames(ctx context.Context, id uuid.UUID, frames []pose.Frame) (*FramesResult, error)
	Get(ctx context.Context, id uuid.UUID) (*Summary, error)
	Finish(ctx context.Context, id uuid.UUID) (*Summary, error)
	ListByUser(ctx context.Context, userID string, page, size int) ([]*Summary, int, error)
}

type StartRequest struct {
	UserID   string `json:"userId"`
	Analyzer string `json:"analyzer"`
}

type FramesRequest struct {
	Frames []pose.Frame `json:"frames"`
}

type ListResponse struct {
	Sessions []*Summary `json:"sessions"`
	Total    int        `json:"total"`
}

// StreamMessage is sent back for every batch received on the stream.
type StreamMessage struct {
	Result *FramesResult `json:"result,omitempty"`
	Error  string        `json:"error,omitempty"`
}

type Handler struct {
	manager  sessionManager
	upgrader websocket.Upgrader
}

func NewHandler(manager sessionManager) *Handler {
	return &Handler{
		manager: manager,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  64 << 10,
			WriteBufferSize: 16 << 10,
			// origins are checked by the CORS and auth middlewares
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// SetupRoutes registers the session routes. Frame uploads are rate limited
// per session.
func (h *Handler) SetupRoutes(
	r *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	framesPerMin int,
	metricsManager *metrics.Manager,
) {
	sessionKey := func(r *http.Request) string {
		return "session:" + mux.Vars(r)["id"]
	}

	r.HandleFunc("/sessions", h.HandleStart).Methods("POST", "OPTIONS").Name("new-session")
	r.HandleFunc("/sessions/user/{userId}/page/{page}/size/{size}", h.HandleList).Methods("GET", "OPTIONS").Name("list-sessions")
	r.HandleFunc("/sessions/{id}", h.HandleGet).Methods("GET", "OPTIONS").Name("get-session")
	r.Handle(
		"/sessions/{id}/frames",
		middleware.RateLimit(rateLimiter, sessionKey, framesPerMin, metricsManager)(http.HandlerFunc(h.HandleFrames)),
	).Methods("POST", "OPTIONS").Name("session-frames")
	r.HandleFunc("/sessions/{id}/finish", h.HandleFinish).Methods("POST", "OPTIONS").Name("finish-session")
	r.HandleFunc("/sessions/{id}/stream", h.HandleStream).Methods("GET").Name("session-stream")
}

func (h *Handler) HandleStart(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workout.session.new")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req StartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("new session, unmarshal json params: %s", err)
		http.Error(w, "error, invalid json params", http.StatusBadRequest)
		return
	}
	if req.UserID == "" {
		http.Error(w, "error, user id not set", http.StatusBadRequest)
		return
	}

	session, err := h.manager.Start(ctx, req.UserID, req.Analyzer)
	if err != nil {
		switch {
		case errors.Is(err, repcount.ErrUnknownAnalyzer):
			http.Error(w, "error, unknown analyzer", http.StatusBadRequest)
		case errors.Is(err, gamification.ErrProfileNotFound):
			http.Error(w, "error, profile not found", http.StatusNotFound)
		default:
			log.Errorf("start session for [%s]: %s", req.UserID, err)
			http.Error(w, "error, failed to start session", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, session, http.StatusCreated)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workout.session.get")
	defer span.End()

	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	summary, err := h.manager.Get(ctx, id)
	if err != nil {
		writeSessionError(w, id, "get", err)
		return
	}

	writeJSON(w, summary, http.StatusOK)
}

func (h *Handler) HandleFrames(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workout.session.frames")
	defer span.End()

	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req FramesRequest
	body := http.MaxBytesReader(w, r.Body, streamReadLimit)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "error, request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		log.Tracef("session frames, unmarshal json params: %s", err)
		http.Error(w, "error, invalid json params", http.StatusBadRequest)
		return
	}

	result, err := h.manager.PushFrames(ctx, id, req.Frames)
	if err != nil {
		writeSessionError(w, id, "push frames", err)
		return
	}

	writeJSON(w, result, http.StatusOK)
}

func (h *Handler) HandleFinish(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workout.session.finish")
	defer span.End()

	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	summary, err := h.manager.Finish(ctx, id)
	if err != nil {
		writeSessionError(w, id, "finish", err)
		return
	}

	writeJSON(w, summary, http.StatusOK)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workout.session.list")
	defer span.End()

	vars := mux.Vars(r)
	userID := vars["userId"]
	page, err := strconv.Atoi(vars["page"])
	if err != nil || page < 0 || page > maxListPage {
		http.Error(w, "error, invalid page", http.StatusBadRequest)
		return
	}
	size, err := strconv.Atoi(vars["size"])
	if err != nil || size <= 0 || size > maxListPageSize {
		http.Error(w, "error, invalid size", http.StatusBadRequest)
		return
	}

	sessions, total, err := h.manager.ListByUser(ctx, userID, page, size)
	if err != nil {
		log.Errorf("list sessions for [%s]: %s", userID, err)
		http.Error(w, "error, failed to list sessions", http.StatusInternalServerError)
		return
	}

	writeJSON(w, ListResponse{
		Sessions: sessions,
		Total:    total,
	}, http.StatusOK)
}

// HandleStream upgrades to a websocket. Each text message carries a
// FramesRequest and is answered with a StreamMessage. The stream closes when
// the session is gone.
func (h *Handler) HandleStream(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	summary, err := h.manager.Get(r.Context(), id)
	if err != nil {
		writeSessionError(w, id, "stream", err)
		return
	}
	if summary.Status != StatusActive {
		writeSessionError(w, id, "stream", ErrSessionFinished)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// upgrader already wrote the error response
		log.Debugf("session [%s] stream upgrade: %s", id, err)
		return
	}
	defer conn.Close()

	conn.SetReadLimit(streamReadLimit)
	log.Debugf("session [%s] stream opened", id)

	for {
		if err := conn.SetReadDeadline(time.Now().Add(streamReadIdle)); err != nil {
			return
		}

		var req FramesRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debugf("session [%s] stream read: %s", id, err)
			}
			return
		}

		ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workout.session.stream.frames")
		result, err := h.manager.PushFrames(ctx, id, req.Frames)
		span.End()

		msg := StreamMessage{Result: result}
		if err != nil {
			msg.Error = err.Error()
		}

		if err := conn.SetWriteDeadline(time.Now().Add(streamWriteWait)); err != nil {
			return
		}
		if err := conn.WriteJSON(msg); err != nil {
			log.Debugf("session [%s] stream write: %s", id, err)
			return
		}

		if errors.Is(err, ErrSessionFinished) ||
			errors.Is(err, ErrSessionNotFound) ||
			errors.Is(err, ErrSessionNotLocal) {
			_ = conn.WriteControl(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session ended"),
				time.Now().Add(streamWriteWait),
			)
			return
		}
	}
}

func sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "error, invalid session id", http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}

func writeSessionError(w http.ResponseWriter, id uuid.UUID, action string, err error) {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		http.Error(w, "error, session not found", http.StatusNotFound)
	case errors.Is(err, ErrSessionFinished):
		http.Error(w, "error, session already finished", http.StatusConflict)
	case errors.Is(err, ErrSessionNotLocal):
		http.Error(w, "error, session is live on another instance", http.StatusMisdirectedRequest)
	case errors.Is(err, ErrFramesEmpty),
		errors.Is(err, ErrTooManyFrames),
		errors.Is(err, ErrInvalidFrame):
		http.Error(w, "error, "+err.Error(), http.StatusBadRequest)
	case errors.Is(err, gamification.ErrProfileNotFound):
		http.Error(w, "error, profile not found", http.StatusNotFound)
	default:
		log.Errorf("%s session [%s]: %s", action, id, err)
		http.Error(w, "error, internal", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, v any, status int) {
	respJson, err := json.Marshal(v)
	if err != nil {
		log.Errorf("marshal response: %s", err)
		http.Error(w, "error, marshal response", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, status)
}
