package gamification

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymxp/internal/telemetry/tracing"
	"github.com/2beens/gymxp/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=gamification_test

const (
	defaultLeaderboardLimit = 10
	maxLeaderboardLimit     = 100
)

type profileService interface {
	Create(ctx context.Context, userID, displayName string) (*Profile, error)
	Get(ctx context.Context, userID string) (*Profile, error)
	Delete(ctx context.Context, userID string) error
	Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error)
	Rank(ctx context.Context, userID string) (int, error)
	Progress(totalXP int) LevelProgress
}

type CreateProfileRequest struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
}

type ProfileResponse struct {
	Profile
	Progress LevelProgress `json:"progress"`
	Rank     int           `json:"rank"`
}

type DeleteProfileResponse struct {
	DeletedID string `json:"deletedId"`
}

type LeaderboardResponse struct {
	Entries []LeaderboardEntry `json:"entries"`
}

type Handler struct {
	service profileService
}

func NewHandler(service profileService) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/profiles", h.HandleCreate).Methods("POST", "OPTIONS").Name("new-profile")
	r.HandleFunc("/profiles/{id}", h.HandleGet).Methods("GET", "OPTIONS").Name("get-profile")
	r.HandleFunc("/profiles/{id}", h.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-profile")
	r.HandleFunc("/leaderboard", h.HandleLeaderboard).Methods("GET", "OPTIONS").Name("leaderboard")
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gamification.profile.new")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req CreateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("new profile, unmarshal json params: %s", err)
		http.Error(w, "add profile failed", http.StatusBadRequest)
		return
	}

	profile, err := h.service.Create(ctx, req.UserID, req.DisplayName)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidProfile):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, ErrProfileExists):
			http.Error(w, "error, profile already exists", http.StatusConflict)
		default:
			log.Errorf("failed to add new profile [%s]: %s", req.UserID, err)
			http.Error(w, "error, failed to add new profile", http.StatusInternalServerError)
		}
		return
	}

	profileJson, err := json.Marshal(profile)
	if err != nil {
		log.Errorf("failed to marshal new profile: %s", err)
		http.Error(w, "error, failed to add new profile", http.StatusInternalServerError)
		return
	}

	log.Debugf("new profile added: %s", profileJson)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, profileJson, http.StatusCreated)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gamification.profile.get")
	defer span.End()

	userID := mux.Vars(r)["id"]
	if userID == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	profile, err := h.service.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			http.Error(w, "error, profile not found", http.StatusNotFound)
			return
		}
		log.Errorf("get profile [%s]: %s", userID, err)
		http.Error(w, "error, failed to get profile", http.StatusInternalServerError)
		return
	}

	rank, err := h.service.Rank(ctx, userID)
	if err != nil {
		// the profile is still useful without the rank
		log.Errorf("get profile [%s] rank: %s", userID, err)
	}

	resp := ProfileResponse{
		Profile:  *profile,
		Progress: h.service.Progress(profile.TotalXP),
		Rank:     rank,
	}
	respJson, err := json.Marshal(resp)
	if err != nil {
		log.Errorf("marshal profile [%s]: %s", userID, err)
		http.Error(w, "error, failed to get profile", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gamification.profile.delete")
	defer span.End()

	userID := mux.Vars(r)["id"]
	if userID == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(ctx, userID); err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			http.Error(w, "error, profile not found", http.StatusNotFound)
			return
		}
		log.Errorf("delete profile [%s]: %s", userID, err)
		http.Error(w, "error, failed to delete profile", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(DeleteProfileResponse{DeletedID: userID})
	if err != nil {
		log.Errorf("marshal delete profile response: %s", err)
		http.Error(w, "error, failed to delete profile", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

func (h *Handler) HandleLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gamification.leaderboard")
	defer span.End()

	limit := defaultLeaderboardLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		l, err := strconv.Atoi(limitStr)
		if err != nil || l <= 0 {
			http.Error(w, "error, invalid limit", http.StatusBadRequest)
			return
		}
		limit = min(l, maxLeaderboardLimit)
	}

	entries, err := h.service.Leaderboard(ctx, limit)
	if err != nil {
		log.Errorf("get leaderboard: %s", err)
		http.Error(w, "error, failed to get leaderboard", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(LeaderboardResponse{Entries: entries})
	if err != nil {
		log.Errorf("marshal leaderboard: %s", err)
		http.Error(w, "error, failed to get leaderboard", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}
