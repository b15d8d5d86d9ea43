package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValuesRequestOmitsEmptyAxes(t *testing.T) {
	data, err := json.Marshal(ValuesRequest{Values: []float64{1, 2}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"values":[1,2]}`, string(data))

	data, err = json.Marshal(ValuesRequest{Axes: []int{3}, Values: []float64{1}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"axes":[3],"values":[1]}`, string(data))
}

func TestCalibrationRequestWholePart(t *testing.T) {
	var req CalibrationRequest
	require.NoError(t, json.Unmarshal([]byte(`{}`), &req))
	assert.Nil(t, req.Axis)

	require.NoError(t, json.Unmarshal([]byte(`{"axis":0,"wait":true}`), &req))
	require.NotNil(t, req.Axis)
	assert.Equal(t, 0, *req.Axis)
	assert.True(t, req.Wait)
}

func TestPostJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req ValuesRequest
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&req)) {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		_ = json.NewEncoder(w).Encode(ValuesResponse{Axes: req.Axes, Values: req.Values})
	}))
	defer ts.Close()

	var out ValuesResponse
	err := PostJSON(context.Background(), ts.URL, ValuesRequest{Axes: []int{1}, Values: []float64{4}}, &out)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, out.Axes)
	assert.Equal(t, []float64{4}, out.Values)
}

func TestPutJSONWithoutResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	assert.NoError(t, PutJSON(context.Background(), ts.URL, AxesRequest{}, nil))
}

func TestGetJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		_ = json.NewEncoder(w).Encode(StatusResponse{State: "attached", Mode: "names", Axes: 6})
	}))
	defer ts.Close()

	var out StatusResponse
	require.NoError(t, GetJSON(context.Background(), ts.URL, &out))
	assert.Equal(t, "attached", out.State)
	assert.Equal(t, 6, out.Axes)
}

func TestStatusErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		code    int
		message string
	}{
		{name: "error document", body: `{"error":"axis index out of range"}`, code: http.StatusBadRequest, message: "axis index out of range"},
		{name: "plain text", body: "boom", code: http.StatusInternalServerError},
		{name: "redirect", code: http.StatusNotModified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.code)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer ts.Close()

			err := GetJSON(context.Background(), ts.URL, &StatusResponse{})
			var se *StatusError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.code, se.Code)
			assert.Equal(t, tt.message, se.Message)
			assert.Contains(t, se.Error(), ts.URL)
		})
	}
}

func TestContextCancellation(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.Error(t, GetJSON(ctx, ts.URL, &StatusResponse{}))
}
