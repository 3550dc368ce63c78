package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManager_RegistersEverything(t *testing.T) {
	m, reg := NewTestManagerAndRegistry()

	m.CounterRequests.WithLabelValues("GET", "200").Inc()
	m.CounterFramesProcessed.WithLabelValues("knee3d").Add(30)
	m.CounterFramesRejected.WithLabelValues("stale").Inc()
	m.CounterRepsCounted.WithLabelValues("knee3d").Add(2)
	m.CounterSessionsStarted.WithLabelValues("knee3d").Inc()
	m.CounterSessionsFinished.WithLabelValues("finished").Inc()
	m.HistogramRequestDuration.WithLabelValues("get-session", "GET", "200").Observe(0.01)

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make(map[string]*dto.MetricFamily, len(families))
	for _, f := range families {
		names[f.GetName()] = f
	}
	for _, name := range []string{
		"gymxp_test_server_request",
		"gymxp_test_server_handle_request_panic",
		"gymxp_test_server_rate_limited_requests",
		"gymxp_test_server_frames_processed",
		"gymxp_test_server_frames_rejected",
		"gymxp_test_server_reps_counted",
		"gymxp_test_server_sessions_started",
		"gymxp_test_server_sessions_finished",
		"gymxp_test_server_xp_awarded",
		"gymxp_test_server_level_ups",
		"gymxp_test_server_current_requests",
		"gymxp_test_server_life_signal",
		"gymxp_test_server_live_sessions",
		"gymxp_test_server_request_duration_seconds",
		"gymxp_test_server_frame_batch_duration_seconds",
		"gymxp_test_server_session_reps",
	} {
		assert.Contains(t, names, name)
	}

	assert.Equal(t, dto.MetricType_COUNTER, names["gymxp_test_server_reps_counted"].GetType())
	assert.Equal(t, dto.MetricType_HISTOGRAM, names["gymxp_test_server_session_reps"].GetType())
	assert.Equal(t, float64(30), testutil.ToFloat64(m.CounterFramesProcessed.WithLabelValues("knee3d")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.CounterRepsCounted.WithLabelValues("knee3d")))
}

func TestNewManager_SeparateRegistries(t *testing.T) {
	// registering twice on separate registries must not panic
	assert.NotPanics(t, func() {
		NewTestManager()
		NewTestManager()
	})

	reg := prometheus.NewRegistry()
	NewManager("gymxp", "main", reg)
	assert.Panics(t, func() {
		NewManager("gymxp", "main", reg)
	})
}

func TestSetupPrometheus(t *testing.T) {
	extra := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "extra_collector_total",
		Help: "test",
	})
	reg := SetupPrometheus(extra)
	extra.Inc()

	count, err := testutil.GatherAndCount(reg, "extra_collector_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = testutil.GatherAndCount(reg, "go_goroutines")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
