package misc

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/gymxp/internal/gamification"
	"github.com/2beens/gymxp/internal/repcount"
	"github.com/2beens/gymxp/internal/telemetry/tracing"
	"github.com/2beens/gymxp/pkg"
)

const healthCheckTimeout = 3 * time.Second

// HealthCheck reports whether a dependency (db, redis, ...) is reachable.
type HealthCheck func(ctx context.Context) error

type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

type AnalyzersResponse struct {
	Default   string             `json:"default"`
	Analyzers []string           `json:"analyzers"`
	Counter   repcount.Config    `json:"counter"`
	XP        gamification.Rules `json:"xp"`
}

type Handler struct {
	versionInfo   string
	healthChecks  map[string]HealthCheck
	counterConfig repcount.Config
	xpRules       gamification.Rules
}

func NewHandler(
	versionInfo string,
	healthChecks map[string]HealthCheck,
	counterConfig repcount.Config,
	xpRules gamification.Rules,
) *Handler {
	return &Handler{
		versionInfo:   versionInfo,
		healthChecks:  healthChecks,
		counterConfig: counterConfig,
		xpRules:       xpRules,
	}
}

func (handler *Handler) SetupRoutes(mainRouter *mux.Router) {
	mainRouter.HandleFunc("/", handler.handleRoot).Methods("GET", "POST", "OPTIONS").Name("root")
	mainRouter.HandleFunc("/health", handler.handleHealth).Methods("GET").Name("health")
	mainRouter.HandleFunc("/version", handler.handleGetVersionInfo).Methods("GET").Name("version")
	mainRouter.HandleFunc("/analyzers", handler.handleAnalyzers).Methods("GET", "OPTIONS").Name("analyzers")
}

func (handler *Handler) handleRoot(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, "I'm OK, ready to count squats ;)")
}

func (handler *Handler) handleGetVersionInfo(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, handler.versionInfo)
}

func (handler *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "miscHandler.health")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	names := make([]string, 0, len(handler.healthChecks))
	for name := range handler.healthChecks {
		names = append(names, name)
	}
	sort.Strings(names)

	resp := HealthResponse{
		Status: "ok",
		Checks: make(map[string]string, len(names)),
	}
	for _, name := range names {
		if err := handler.healthChecks[name](ctx); err != nil {
			log.Warnf("health check [%s]: %s", name, err)
			resp.Checks[name] = err.Error()
			resp.Status = "degraded"
			continue
		}
		resp.Checks[name] = "ok"
	}
	span.SetAttributes(attribute.String("health.status", resp.Status))

	status := http.StatusOK
	if resp.Status != "ok" {
		status = http.StatusServiceUnavailable
	}

	respJson, err := json.Marshal(resp)
	if err != nil {
		log.Errorf("marshal health response: %s", err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, status)
}

func (handler *Handler) handleAnalyzers(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "miscHandler.analyzers")
	defer span.End()

	respJson, err := json.Marshal(AnalyzersResponse{
		Default:   repcount.DefaultAnalyzer,
		Analyzers: repcount.AnalyzerNames(),
		Counter:   handler.counterConfig,
		XP:        handler.xpRules,
	})
	if err != nil {
		log.Errorf("marshal analyzers response: %s", err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}
