package api

import "time"

// Location is one row of the axis table.
type Location struct {
	Shard int `json:"shard"`
	Local int `json:"local"`
}

type StatusResponse struct {
	State      string `json:"state"`
	Mode       string `json:"mode"`
	Axes       int    `json:"axes"`
	Calibrator bool   `json:"calibrator"`
}

type AxesResponse struct {
	Names     []string   `json:"names"`
	Locations []Location `json:"locations"`
	Axes      int        `json:"axes"`
}

type Shard struct {
	Key          string   `json:"key"`
	Capabilities []string `json:"capabilities"`
	ID           int      `json:"id"`
	Axes         int      `json:"axes"`
}

type ShardsResponse struct {
	Shards []Shard `json:"shards"`
}

// ShardHealth is the health monitor's record for one shard.
type ShardHealth struct {
	LastCheck        time.Time `json:"lastCheck"`
	LastHealthy      time.Time `json:"lastHealthy"`
	Key              string    `json:"key"`
	Status           string    `json:"status"`
	LastError        string    `json:"lastError,omitempty"`
	ConsecutiveFails int       `json:"consecutiveFails"`
}

type ShardHealthResponse struct {
	Shards []ShardHealth `json:"shards"`
}

// ValuesRequest writes one value per axis. An empty Axes addresses every
// axis in logical order.
type ValuesRequest struct {
	Axes   []int     `json:"axes,omitempty"`
	Values []float64 `json:"values"`
}

type ValuesResponse struct {
	Axes   []int     `json:"axes,omitempty"`
	Values []float64 `json:"values"`
}

// QuantitiesResponse lists the quantities served under /quantities.
type QuantitiesResponse struct {
	Quantities []string `json:"quantities"`
}

// AxesRequest addresses a set of axes without values, e.g. to stop them.
type AxesRequest struct {
	Axes []int `json:"axes,omitempty"`
}

// ModesRequest sets control modes. When All is set every axis is put in
// that mode and Axes and Modes are ignored.
type ModesRequest struct {
	All   string   `json:"all,omitempty"`
	Axes  []int    `json:"axes,omitempty"`
	Modes []string `json:"modes,omitempty"`
}

type ModesResponse struct {
	Axes  []int    `json:"axes,omitempty"`
	Modes []string `json:"modes"`
}

type MotionResponse struct {
	Done bool `json:"done"`
}

// VariableValues holds one value per shard, in shard order.
type VariableValues struct {
	Values []string `json:"values"`
}

type VariablesResponse struct {
	Keys []string `json:"keys"`
}

// CalibrationRequest targets one axis, or the whole part when Axis is nil.
type CalibrationRequest struct {
	Axis *int `json:"axis,omitempty"`
	Wait bool `json:"wait,omitempty"`
}

type StampResponse struct {
	Time time.Time `json:"time"`
	Seq  uint64    `json:"seq"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
