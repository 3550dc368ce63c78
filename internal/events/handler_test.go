package events_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/2beens/gymxp/internal/events"
)

func newTestRouter(t *testing.T) (*mux.Router, *Mockservice) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockService := NewMockservice(ctrl)
	r := mux.NewRouter()
	events.NewHandler(mockService).SetupRoutes(r)
	return r, mockService
}

func TestHandler_HandleList(t *testing.T) {
	r, mockService := newTestRouter(t)

	now := time.Now().UTC().Truncate(time.Second)
	listed := []*events.Event{
		events.NewLevelUpEvent(events.LevelUp{
			SessionID: "s-1",
			UserID:    "ana",
			FromLevel: 1,
			ToLevel:   2,
			TotalXP:   120,
			Timestamp: now,
		}).WithID(3),
		events.NewSessionStartedEvent(events.SessionStarted{
			SessionID: "s-1",
			UserID:    "ana",
			Analyzer:  "knee3d",
			Timestamp: now.Add(-time.Minute),
		}).WithID(1),
	}

	mockService.EXPECT().
		List(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, params events.ListParams) ([]*events.Event, error) {
			assert.Equal(t, 1, params.Page)
			assert.Equal(t, 2, params.Size)
			assert.Equal(t, "ana", params.UserID)
			assert.Nil(t, params.Type)
			return listed, nil
		})
	mockService.EXPECT().
		Count(gomock.Any(), events.EventParams{UserID: "ana"}).
		Return(7, nil)

	req := httptest.NewRequest(http.MethodGet, "/events/list/page/1/size/2?user=ana", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp events.ListResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 7, resp.Total)
	require.Len(t, resp.Events, 2)
	assert.Equal(t, 3, resp.Events[0].ID)
	assert.Equal(t, events.EventTypeLevelUp, resp.Events[0].Type)
	assert.Equal(t, "2", resp.Events[0].Data["to"])
	assert.Equal(t, "knee3d", resp.Events[1].Data["analyzer"])
}

func TestHandler_HandleList_TypeFilter(t *testing.T) {
	r, mockService := newTestRouter(t)

	mockService.EXPECT().
		List(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, params events.ListParams) ([]*events.Event, error) {
			require.NotNil(t, params.Type)
			assert.Equal(t, events.EventTypeSessionFinished, *params.Type)
			return []*events.Event{}, nil
		})
	mockService.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		Return(0, nil)

	req := httptest.NewRequest(http.MethodGet, "/events/list/page/0/size/20?type=session_finished", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp events.ListResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Empty(t, resp.Events)
	assert.Zero(t, resp.Total)
}

func TestHandler_HandleList_BadRequest(t *testing.T) {
	r, _ := newTestRouter(t)

	for _, path := range []string{
		"/events/list/page/-1/size/10",
		"/events/list/page/x/size/10",
		"/events/list/page/0/size/0",
		"/events/list/page/0/size/1000",
		"/events/list/page/0/size/10?type=bench_press",
		"/events/list/page/10001/size/10",
		"/events/list/page/9223372036854775807/size/200",
		"/events/list/page/0/size/10?from=yesterday",
		"/events/list/page/0/size/10?to=2026-03-14",
		"/events/list/page/0/size/10?from=2026-03-14T18:00:00Z&to=2026-03-14T17:00:00Z",
	} {
		t.Run(path, func(t *testing.T) {
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}
}

func TestHandler_HandleList_ServiceError(t *testing.T) {
	r, mockService := newTestRouter(t)

	mockService.EXPECT().
		List(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("db down"))

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/events/list/page/0/size/10", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestHandler_HandleList_TimeRange(t *testing.T) {
	r, mockService := newTestRouter(t)

	from := time.Date(2026, 3, 14, 16, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)

	mockService.EXPECT().
		List(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, params events.ListParams) ([]*events.Event, error) {
			require.NotNil(t, params.From)
			require.NotNil(t, params.To)
			assert.Equal(t, from, *params.From)
			assert.Equal(t, to, *params.To)
			assert.Equal(t, "ana", params.UserID)
			return []*events.Event{}, nil
		})
	mockService.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, params events.EventParams) (int, error) {
			require.NotNil(t, params.From)
			assert.Equal(t, from, *params.From)
			return 0, nil
		})

	// offsets are normalized to UTC
	req := httptest.NewRequest(http.MethodGet, "/events/list/page/0/size/20?user=ana&from=2026-03-14T17:00:00%2B01:00&to=2026-03-14T18:00:00Z", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestHandler_HandleGet(t *testing.T) {
	r, mockService := newTestRouter(t)

	ts := time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)
	mockService.EXPECT().
		Get(gomock.Any(), 42).
		Return(events.NewSessionFinishedEvent(events.SessionFinished{
			SessionID: "s-1",
			UserID:    "ana",
			Status:    "finished",
			Reps:      10,
			XP:        125,
			Duration:  time.Minute,
			Timestamp: ts,
		}).WithID(42), nil)
	mockService.EXPECT().
		Get(gomock.Any(), 43).
		Return(nil, fmt.Errorf("get event [43]: %w", events.ErrEventNotFound))
	mockService.EXPECT().
		Get(gomock.Any(), 44).
		Return(nil, errors.New("db down"))

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/events/42", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var event events.Event
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &event))
	assert.Equal(t, 42, event.ID)
	assert.Equal(t, events.EventTypeSessionFinished, event.Type)
	assert.Equal(t, "ana", event.UserID)
	assert.True(t, ts.Equal(event.Timestamp))

	for path, expected := range map[string]int{
		"/events/43": http.StatusNotFound,
		"/events/44": http.StatusInternalServerError,
		// the id must be numeric, so this route does not match
		"/events/abc": http.StatusNotFound,
	} {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, expected, rr.Code, path)
	}
}
