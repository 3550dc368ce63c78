package events

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymxp/internal/telemetry/tracing"
	"github.com/2beens/gymxp/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=events_test

const (
	maxPageSize = 200
	maxPage     = 10000
)

type service interface {
	Get(ctx context.Context, id int) (*Event, error)
	List(ctx context.Context, params ListParams) ([]*Event, error)
	Count(ctx context.Context, params EventParams) (int, error)
}

type ListResponse struct {
	Events []*Event `json:"events"`
	Total  int      `json:"total"`
}

type Handler struct {
	service service
}

func NewHandler(service service) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/events/list/page/{page}/size/{size}", h.HandleList).Methods("GET", "OPTIONS").Name("list-events")
	r.HandleFunc("/events/{id:[0-9]+}", h.HandleGet).Methods("GET", "OPTIONS").Name("get-event")
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.events.get")
	defer span.End()

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "error, invalid event id", http.StatusBadRequest)
		return
	}

	event, err := h.service.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			http.Error(w, "error, event not found", http.StatusNotFound)
			return
		}
		log.Errorf("get event [%d]: %s", id, err)
		http.Error(w, "error, failed to get event", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(event)
	if err != nil {
		log.Errorf("marshal event [%d]: %s", id, err)
		http.Error(w, "error, failed to get event", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.events.list")
	defer span.End()

	vars := mux.Vars(r)
	page, err := strconv.Atoi(vars["page"])
	if err != nil || page < 0 || page > maxPage {
		http.Error(w, "error, invalid page", http.StatusBadRequest)
		return
	}
	size, err := strconv.Atoi(vars["size"])
	if err != nil || size <= 0 || size > maxPageSize {
		http.Error(w, "error, invalid size", http.StatusBadRequest)
		return
	}

	params := EventParams{
		UserID: r.URL.Query().Get("user"),
	}
	if typeStr := r.URL.Query().Get("type"); typeStr != "" {
		eventType := EventType(typeStr)
		if !eventType.IsValid() {
			http.Error(w, "error, invalid event type", http.StatusBadRequest)
			return
		}
		params.Type = &eventType
	}
	for _, bound := range []struct {
		key  string
		dest **time.Time
	}{
		{key: "from", dest: &params.From},
		{key: "to", dest: &params.To},
	} {
		raw := r.URL.Query().Get(bound.key)
		if raw == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			http.Error(w, "error, invalid "+bound.key+" time", http.StatusBadRequest)
			return
		}
		t = t.UTC()
		*bound.dest = &t
	}
	if params.From != nil && params.To != nil && params.To.Before(*params.From) {
		http.Error(w, "error, to is before from", http.StatusBadRequest)
		return
	}

	events, err := h.service.List(ctx, ListParams{
		EventParams: params,
		Page:        page,
		Size:        size,
	})
	if err != nil {
		log.Errorf("list events: %s", err)
		http.Error(w, "error, failed to list events", http.StatusInternalServerError)
		return
	}

	total, err := h.service.Count(ctx, params)
	if err != nil {
		log.Errorf("count events: %s", err)
		http.Error(w, "error, failed to list events", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(ListResponse{
		Events: events,
		Total:  total,
	})
	if err != nil {
		log.Errorf("marshal events list: %s", err)
		http.Error(w, "error, failed to list events", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}
