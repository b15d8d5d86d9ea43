package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dreamware/axisremap/internal/api"
	"github.com/dreamware/axisremap/internal/device"
	"github.com/dreamware/axisremap/internal/health"
	promremap "github.com/dreamware/axisremap/internal/metrics/prometheus"
	"github.com/dreamware/axisremap/internal/remap"
	"github.com/dreamware/axisremap/internal/simboard"
)

type fixture struct {
	url   string
	a, b  *simboard.Board
	calib *simboard.Calibrator
	srv   *Server
}

// newFixture serves boards A (a0..a2) and B (b0..b2) in the logical order
// a0 a1 b0 b1 b2 a2, plus a calibrator. wrapB may hide capabilities of B.
func newFixture(t *testing.T, wrapB func(*simboard.Board) any) *fixture {
	t.Helper()
	f := &fixture{
		a: simboard.MustNew(simboard.Config{Key: "A", Axes: 3, Names: []string{"a0", "a1", "a2"},
			Variables: map[string]string{"gain": "1"}}),
		b: simboard.MustNew(simboard.Config{Key: "B", Axes: 3, Names: []string{"b0", "b1", "b2"},
			Variables: map[string]string{"gain": "2"}}),
		calib: simboard.NewCalibrator(),
	}
	var devB any = f.b
	if wrapB != nil {
		devB = wrapB(f.b)
	}

	reg := prometheus.NewRegistry()
	r, err := remap.New(remap.Config{AxesNames: []string{"a0", "a1", "b0", "b1", "b2", "a2"}},
		remap.WithMetrics(promremap.NewRemapMetrics(reg)))
	require.NoError(t, err)
	require.NoError(t, r.Attach([]remap.Backend{
		{Key: "A", Device: f.a},
		{Key: "B", Device: devB},
		{Key: "calibrator", Device: f.calib},
	}))

	f.srv = New(r, zap.NewNop(), reg)
	ts := httptest.NewServer(f.srv.Handler())
	t.Cleanup(func() {
		ts.Close()
		_ = f.srv.Detach()
	})
	f.url = ts.URL
	return f
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var se *api.StatusError
	require.ErrorAs(t, err, &se)
	return se.Code
}

func TestStatusAxesAndShards(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	var st api.StatusResponse
	require.NoError(t, api.GetJSON(ctx, f.url+"/status", &st))
	assert.Equal(t, api.StatusResponse{State: "attached", Mode: "names", Axes: 6, Calibrator: true}, st)

	var axes api.AxesResponse
	require.NoError(t, api.GetJSON(ctx, f.url+"/axes", &axes))
	assert.Equal(t, 6, axes.Axes)
	assert.Equal(t, []string{"a0", "a1", "b0", "b1", "b2", "a2"}, axes.Names)
	assert.Equal(t, api.Location{Shard: 0, Local: 2}, axes.Locations[5])

	var shards api.ShardsResponse
	require.NoError(t, api.GetJSON(ctx, f.url+"/shards", &shards))
	require.Len(t, shards.Shards, 2)
	assert.Equal(t, "B", shards.Shards[1].Key)
	assert.Contains(t, shards.Shards[0].Capabilities, "pid")

	var stamp api.StampResponse
	require.NoError(t, api.GetJSON(ctx, f.url+"/stamp", &stamp))
	assert.Equal(t, uint64(1), stamp.Seq)
}

func TestQuantityRoundTrip(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	require.NoError(t, api.PutJSON(ctx, f.url+"/quantities/position",
		api.ValuesRequest{Values: []float64{10, 11, 20, 21, 22, 12}}, nil))

	got, err := f.b.TargetPosition(0)
	require.NoError(t, err)
	assert.Equal(t, 20.0, got)

	var out api.ValuesResponse
	require.NoError(t, api.GetJSON(ctx, f.url+"/quantities/position?axes=5,0,3", &out))
	assert.Equal(t, []int{5, 0, 3}, out.Axes)
	assert.Equal(t, []float64{12, 10, 21}, out.Values)

	require.NoError(t, api.PutJSON(ctx, f.url+"/quantities/speed",
		api.ValuesRequest{Axes: []int{4}, Values: []float64{7}}, nil))
	require.NoError(t, api.GetJSON(ctx, f.url+"/quantities/speed", &out))
	assert.Equal(t, []float64{0, 0, 0, 0, 7, 0}, out.Values)

	require.NoError(t, api.PostJSON(ctx, f.url+"/move/relative",
		api.ValuesRequest{Axes: []int{0}, Values: []float64{5}}, nil))
	require.NoError(t, api.GetJSON(ctx, f.url+"/quantities/encoder", &out))
	assert.Equal(t, []float64{15, 11, 20, 21, 22, 12}, out.Values)

	var list api.QuantitiesResponse
	require.NoError(t, api.GetJSON(ctx, f.url+"/quantities", &list))
	assert.Contains(t, list.Quantities, "position")
	assert.IsIncreasing(t, list.Quantities)
}

func TestQuantityErrors(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	var out api.ValuesResponse

	tests := []struct {
		name string
		call func() error
		want int
	}{
		{"unknown quantity", func() error { return api.GetJSON(ctx, f.url+"/quantities/heat", &out) }, http.StatusNotFound},
		{"axis not a number", func() error { return api.GetJSON(ctx, f.url+"/quantities/position?axes=x", &out) }, http.StatusBadRequest},
		{"axis out of range", func() error { return api.GetJSON(ctx, f.url+"/quantities/position?axes=6", &out) }, http.StatusBadRequest},
		{"no per-axis read", func() error { return api.GetJSON(ctx, f.url+"/quantities/torque?axes=1", &out) }, http.StatusBadRequest},
		{
			"read-only",
			func() error {
				return api.PutJSON(ctx, f.url+"/quantities/temperature", api.ValuesRequest{Values: make([]float64, 6)}, nil)
			},
			http.StatusMethodNotAllowed,
		},
		{
			"no per-axis write",
			func() error {
				return api.PutJSON(ctx, f.url+"/quantities/encoder", api.ValuesRequest{Axes: []int{1}, Values: []float64{1}}, nil)
			},
			http.StatusBadRequest,
		},
		{
			"length mismatch",
			func() error {
				return api.PutJSON(ctx, f.url+"/quantities/position", api.ValuesRequest{Values: []float64{1}}, nil)
			},
			http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusOf(t, tt.call()))
		})
	}
}

func TestBadJSON(t *testing.T) {
	f := newFixture(t, nil)
	resp, err := http.Post(f.url+"/stop", "application/json", http.NoBody)
	require.NoError(t, err)
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestModes(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	require.NoError(t, api.PutJSON(ctx, f.url+"/modes", api.ModesRequest{All: "velocity"}, nil))
	var modes api.ModesResponse
	require.NoError(t, api.GetJSON(ctx, f.url+"/modes", &modes))
	assert.Equal(t, []string{"velocity", "velocity", "velocity", "velocity", "velocity", "velocity"}, modes.Modes)

	require.NoError(t, api.PutJSON(ctx, f.url+"/modes",
		api.ModesRequest{Axes: []int{5, 2}, Modes: []string{"torque", "current"}}, nil))
	require.NoError(t, api.GetJSON(ctx, f.url+"/modes?axes=2,5", &modes))
	assert.Equal(t, []string{"current", "torque"}, modes.Modes)

	m, err := f.b.ControlMode(0)
	require.NoError(t, err)
	assert.Equal(t, device.ControlModeCurrent, m)

	err = api.PutJSON(ctx, f.url+"/modes", api.ModesRequest{All: "warp"}, nil)
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
}

func TestMotionAndStop(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	require.NoError(t, api.PutJSON(ctx, f.url+"/quantities/position", api.ValuesRequest{Values: make([]float64, 6)}, nil))
	require.NoError(t, f.b.SetEncoder(1, 3))

	var motion api.MotionResponse
	require.NoError(t, api.GetJSON(ctx, f.url+"/motion", &motion))
	assert.False(t, motion.Done)
	require.NoError(t, api.GetJSON(ctx, f.url+"/motion?axes=0,5", &motion))
	assert.True(t, motion.Done)

	require.NoError(t, api.PostJSON(ctx, f.url+"/stop", api.AxesRequest{Axes: []int{3}}, nil))
	require.NoError(t, api.PostJSON(ctx, f.url+"/stop", api.AxesRequest{}, nil))
}

func TestVariables(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	var vals api.VariableValues
	require.NoError(t, api.GetJSON(ctx, f.url+"/variables/gain", &vals))
	assert.Equal(t, []string{"1", "2"}, vals.Values)

	require.NoError(t, api.PutJSON(ctx, f.url+"/variables/gain", api.VariableValues{Values: []string{"3", "4"}}, nil))
	got, err := f.b.RemoteVariable("gain")
	require.NoError(t, err)
	assert.Equal(t, "4", string(got))

	err = api.PutJSON(ctx, f.url+"/variables/gain", api.VariableValues{Values: []string{"5"}}, nil)
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))

	var keys api.VariablesResponse
	require.NoError(t, api.GetJSON(ctx, f.url+"/variables", &keys))
	assert.Equal(t, []string{"gain"}, keys.Keys)

	err = api.GetJSON(ctx, f.url+"/variables/missing", &vals)
	assert.Equal(t, http.StatusBadGateway, statusOf(t, err))
}

func TestCalibration(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	axis := 4

	require.NoError(t, api.PostJSON(ctx, f.url+"/calibration/calibrate", api.CalibrationRequest{Axis: &axis}, nil))
	require.NoError(t, api.PostJSON(ctx, f.url+"/calibration/park", api.CalibrationRequest{Axis: &axis, Wait: true}, nil))
	require.NoError(t, api.PostJSON(ctx, f.url+"/calibration/homing", api.CalibrationRequest{}, nil))
	require.NoError(t, api.PostJSON(ctx, f.url+"/calibration/quit-park", api.CalibrationRequest{}, nil))
	require.NoError(t, api.PostJSON(ctx, f.url+"/calibration/abort", api.CalibrationRequest{}, nil))

	assert.Equal(t, []string{"calibrate 4", "park 4 wait=true", "homing all", "quit park"}, f.calib.Calls())

	err := api.PostJSON(ctx, f.url+"/calibration/dance", api.CalibrationRequest{}, nil)
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
}

func TestBackendFailures(t *testing.T) {
	hidePid := func(b *simboard.Board) any {
		return struct {
			device.AxisCounter
			device.AxisInfo
			device.PositionControl
		}{b, b, b}
	}
	f := newFixture(t, hidePid)
	ctx := context.Background()
	var out api.ValuesResponse

	err := api.GetJSON(ctx, f.url+"/quantities/torque", &out)
	assert.Equal(t, http.StatusNotImplemented, statusOf(t, err))

	f.b.SetFault(errors.New("bus off"))
	err = api.GetJSON(ctx, f.url+"/quantities/position", &out)
	assert.Equal(t, http.StatusBadGateway, statusOf(t, err))
	var se *api.StatusError
	require.ErrorAs(t, err, &se)
	assert.Contains(t, se.Message, "bus off")
}

func TestDetach(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	require.NoError(t, api.PostJSON(ctx, f.url+"/detach", struct{}{}, nil))
	assert.True(t, f.a.Released())

	var st api.StatusResponse
	require.NoError(t, api.GetJSON(ctx, f.url+"/status", &st))
	assert.Equal(t, "detached", st.State)
	assert.Zero(t, st.Axes)

	err := api.GetJSON(ctx, f.url+"/axes", &api.AxesResponse{})
	assert.Equal(t, http.StatusServiceUnavailable, statusOf(t, err))

	require.NoError(t, api.PostJSON(ctx, f.url+"/detach", struct{}{}, nil), "detach is idempotent")
}

func TestMetricsEndpoint(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	require.NoError(t, api.PostJSON(ctx, f.url+"/stop", api.AxesRequest{}, nil))

	resp, err := http.Get(f.url + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `axisremap_shard_dispatch_total{ok="true",shard="A"} 1`)
	assert.Contains(t, string(body), "axisremap_attached_axes 6")
}

func TestHealth(t *testing.T) {
	f := newFixture(t, nil)
	resp, err := http.Get(f.url + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{badRequest("x"), http.StatusBadRequest},
		{fmt.Errorf("wrapped: %w", remap.ErrLengthMismatch), http.StatusBadRequest},
		{&remap.AxisError{Axis: 9, Err: remap.ErrAxisOutOfRange}, http.StatusBadRequest},
		{remap.ErrNotAttached, http.StatusServiceUnavailable},
		{&remap.ShardError{Shard: 1, Err: remap.ErrCapabilityUnavailable}, http.StatusNotImplemented},
		{&remap.ShardError{Shard: 1, Err: errors.New("timeout")}, http.StatusBadGateway},
		{&remap.AxisError{Axis: 1, Err: errors.New("timeout")}, http.StatusBadGateway},
		{errors.New("other"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(tt.err))
		})
	}
}

func TestShardHealth(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	m := health.NewMonitor(f.srv.Ping, time.Hour)
	f.srv.WatchHealth(m)
	ts := httptest.NewServer(f.srv.Handler())
	defer ts.Close()

	m.CheckNow(ctx)
	f.b.SetFault(errors.New("bus off"))
	for i := 0; i < 3; i++ {
		m.CheckNow(ctx)
	}

	var out api.ShardHealthResponse
	require.NoError(t, api.GetJSON(ctx, ts.URL+"/health/shards", &out))
	require.Len(t, out.Shards, 2)
	assert.Equal(t, "A", out.Shards[0].Key)
	assert.Equal(t, "healthy", out.Shards[0].Status)
	assert.Equal(t, "unhealthy", out.Shards[1].Status)
	assert.Equal(t, 3, out.Shards[1].ConsecutiveFails)
	assert.Contains(t, out.Shards[1].LastError, "bus off")

	require.NoError(t, f.srv.Detach())
	m.CheckNow(ctx)
	require.NoError(t, api.GetJSON(ctx, ts.URL+"/health/shards", &out))
	assert.Empty(t, out.Shards)

	err := api.GetJSON(ctx, f.url+"/health/shards", &out)
	assert.Equal(t, http.StatusNotFound, statusOf(t, err), "no monitor, no route")
}
