package middleware

import (
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"

	"github.com/2beens/gymxp/internal/telemetry/tracing"
	"github.com/2beens/gymxp/pkg"
)

const (
	TokenHeader = "X-GYMXP-TOKEN"
	AdminHeader = "X-GYMXP-ADMIN"
)

type AuthMiddlewareHandler struct {
	appSecret       string
	adminSecretHash string
	allowedPaths    map[string]bool
	// admin routes, keyed by method
	adminPrefixes map[string][]string
}

func NewAuthMiddlewareHandler(
	appSecret string,
	adminSecretHash string,
) *AuthMiddlewareHandler {
	return &AuthMiddlewareHandler{
		appSecret:       appSecret,
		adminSecretHash: adminSecretHash,
		allowedPaths: map[string]bool{
			"/":        true,
			"/health":  true,
			"/version": true,
		},
		adminPrefixes: map[string][]string{
			http.MethodDelete: {"/profiles/"},
			http.MethodGet:    {"/events/"},
		},
	}
}

func (h *AuthMiddlewareHandler) isAdminRoute(r *http.Request) bool {
	for _, prefix := range h.adminPrefixes[r.Method] {
		if strings.HasPrefix(r.URL.Path, prefix) {
			return true
		}
	}
	return false
}

func (h *AuthMiddlewareHandler) AuthCheck() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, span := tracing.GlobalTracer.Start(r.Context(), "middleware.auth")
			defer span.End()

			if r.Method == http.MethodOptions {
				w.Header().Add("Allow", "GET, POST, DELETE, OPTIONS")
				w.WriteHeader(http.StatusOK)
				span.SetStatus(codes.Ok, "options-ok")
				return
			}

			if h.allowedPaths[r.URL.Path] {
				span.SetStatus(codes.Ok, "ok")
				next.ServeHTTP(w, r)
				return
			}

			authToken := r.Header.Get(TokenHeader)
			// websocket clients cannot always set custom headers on the upgrade request
			if authToken == "" && strings.HasSuffix(r.URL.Path, "/stream") {
				authToken = r.URL.Query().Get("token")
			}

			if authToken == "" {
				log.Tracef("[missing token] [auth middleware] unauthorized => %s", r.URL.Path)
				http.Error(w, "no can do", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "missing-auth-token")
				return
			}
			if h.appSecret == "" || authToken != h.appSecret {
				log.Tracef("[invalid token] [auth middleware] unauthorized => %s", r.URL.Path)
				http.Error(w, "no can do", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "invalid-auth-token")
				return
			}

			if h.isAdminRoute(r) {
				adminSecret := r.Header.Get(AdminHeader)
				if adminSecret == "" || !pkg.CheckSecretHash(adminSecret, h.adminSecretHash) {
					log.Warnf("[admin] [auth middleware] forbidden => %s %s", r.Method, r.URL.Path)
					http.Error(w, "no can do", http.StatusForbidden)
					span.SetStatus(codes.Error, "not-admin")
					return
				}
			}

			span.SetStatus(codes.Ok, "ok")
			next.ServeHTTP(w, r)
		})
	}
}
