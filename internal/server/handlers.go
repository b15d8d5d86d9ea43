package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/dreamware/axisremap/internal/api"
	"github.com/dreamware/axisremap/internal/device"
	"github.com/dreamware/axisremap/internal/remap"
)

var errBadRequest = errors.New("bad request")

func badRequest(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errBadRequest, fmt.Sprintf(format, args...))
}

// parseAxes reads the comma separated ?axes= list. A missing parameter
// means every axis and yields nil.
func parseAxes(r *http.Request) ([]int, error) {
	raw := r.URL.Query().Get("axes")
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	axes := make([]int, 0, len(parts))
	for _, p := range parts {
		j, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, badRequest("axis %q is not an integer", p)
		}
		axes = append(axes, j)
	}
	return axes, nil
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return badRequest("bad json: %v", err)
	}
	return nil
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, _ := s.remap.Axes()
	writeJSON(w, http.StatusOK, api.StatusResponse{
		State:      s.remap.State().String(),
		Mode:       s.remap.Mode().String(),
		Axes:       n,
		Calibrator: s.remap.IsCalibratorDevicePresent(),
	})
}

func (s *Server) handleAxes(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	locs, err := s.remap.Locations()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out := api.AxesResponse{Axes: len(locs), Names: s.remap.AxesNames()}
	for _, l := range locs {
		out.Locations = append(out.Locations, api.Location{Shard: l.Shard, Local: l.Local})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleShards(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	infos, err := s.remap.Shards()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out := api.ShardsResponse{Shards: make([]api.Shard, 0, len(infos))}
	for _, info := range infos {
		out.Shards = append(out.Shards, api.Shard{
			ID: info.ID, Key: info.Key, Axes: info.Axes, Capabilities: info.Capabilities,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleShardHealth(w http.ResponseWriter, r *http.Request) {
	records := s.monitor.All()
	out := api.ShardHealthResponse{Shards: make([]api.ShardHealth, 0, len(records))}
	for _, h := range records {
		out.Shards = append(out.Shards, api.ShardHealth{
			LastCheck:        h.LastCheck,
			LastHealthy:      h.LastHealthy,
			Key:              h.Key,
			Status:           string(h.Status),
			LastError:        h.LastError,
			ConsecutiveFails: h.ConsecutiveFails,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleStamp(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stamp, err := s.remap.LastInputStamp()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, api.StampResponse{Seq: stamp.Seq, Time: stamp.Time})
}

// quantity binds a float valued group of the remapper to /quantities. Nil
// fields are forms the group does not offer.
type quantity struct {
	get         func(*remap.Remapper, []float64) error
	getSelected func(*remap.Remapper, []int, []float64) error
	set         func(*remap.Remapper, []float64) error
	setSelected func(*remap.Remapper, []int, []float64) error
}

var quantities = map[string]quantity{
	"position": {
		(*remap.Remapper).TargetPositionAll, (*remap.Remapper).TargetPositionSelected,
		(*remap.Remapper).PositionMoveAll, (*remap.Remapper).PositionMoveSelected,
	},
	"speed": {
		(*remap.Remapper).RefSpeedAll, (*remap.Remapper).RefSpeedSelected,
		(*remap.Remapper).SetRefSpeedAll, (*remap.Remapper).SetRefSpeedSelected,
	},
	"acceleration": {
		(*remap.Remapper).RefAccelerationAll, (*remap.Remapper).RefAccelerationSelected,
		(*remap.Remapper).SetRefAccelerationAll, (*remap.Remapper).SetRefAccelerationSelected,
	},
	"direct": {
		(*remap.Remapper).RefPositionAll, (*remap.Remapper).RefPositionSelected,
		(*remap.Remapper).SetPositionAll, (*remap.Remapper).SetPositionSelected,
	},
	"velocity": {
		(*remap.Remapper).RefVelocityAll, (*remap.Remapper).RefVelocitySelected,
		(*remap.Remapper).VelocityMoveAll, (*remap.Remapper).VelocityMoveSelected,
	},
	"current": {
		(*remap.Remapper).RefCurrentAll, (*remap.Remapper).RefCurrentSelected,
		(*remap.Remapper).SetRefCurrentAll, (*remap.Remapper).SetRefCurrentSelected,
	},
	"torque": {
		get: (*remap.Remapper).RefTorqueAll,
		set: (*remap.Remapper).SetRefTorqueAll, setSelected: (*remap.Remapper).SetRefTorqueSelected,
	},
	"duty_cycle":       {get: (*remap.Remapper).RefDutyCycleAll, set: (*remap.Remapper).SetRefDutyCycleAll},
	"encoder":          {get: (*remap.Remapper).EncoderAll, set: (*remap.Remapper).SetEncoderAll},
	"encoder_speed":    {get: (*remap.Remapper).EncoderSpeedAll},
	"motor_encoder":    {get: (*remap.Remapper).MotorEncoderAll},
	"measured_torque":  {get: (*remap.Remapper).TorqueAll},
	"measured_current": {get: (*remap.Remapper).CurrentAll},
	"temperature":      {get: (*remap.Remapper).TemperatureAll},
}

func (s *Server) handleListQuantities(w http.ResponseWriter, r *http.Request) {
	names := make([]string, 0, len(quantities))
	for name := range quantities {
		names = append(names, name)
	}
	slices.Sort(names)
	writeJSON(w, http.StatusOK, api.QuantitiesResponse{Quantities: names})
}

func lookupQuantity(w http.ResponseWriter, r *http.Request) (string, quantity, bool) {
	name := r.PathValue("name")
	q, ok := quantities[name]
	if !ok {
		writeJSON(w, http.StatusNotFound, api.ErrorResponse{Error: fmt.Sprintf("unknown quantity %q", name)})
	}
	return name, q, ok
}

func (s *Server) handleGetQuantity(w http.ResponseWriter, r *http.Request) {
	name, q, ok := lookupQuantity(w, r)
	if !ok {
		return
	}
	axes, err := parseAxes(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []float64
	if axes == nil {
		var n int
		if n, err = s.remap.Axes(); err != nil {
			s.writeError(w, r, err)
			return
		}
		out = make([]float64, n)
		err = q.get(s.remap, out)
	} else {
		if q.getSelected == nil {
			s.writeError(w, r, badRequest("%s cannot be read per axis", name))
			return
		}
		out = make([]float64, len(axes))
		err = q.getSelected(s.remap, axes, out)
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, api.ValuesResponse{Axes: axes, Values: out})
}

func (s *Server) handleSetQuantity(w http.ResponseWriter, r *http.Request) {
	name, q, ok := lookupQuantity(w, r)
	if !ok {
		return
	}
	var req api.ValuesRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	var set func() error
	switch {
	case len(req.Axes) == 0 && q.set != nil:
		set = func() error { return q.set(s.remap, req.Values) }
	case len(req.Axes) > 0 && q.setSelected != nil:
		set = func() error { return q.setSelected(s.remap, req.Axes, req.Values) }
	case q.set == nil:
		writeJSON(w, http.StatusMethodNotAllowed, api.ErrorResponse{Error: name + " is read-only"})
		return
	default:
		s.writeError(w, r, badRequest("%s cannot be written per axis", name))
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := set(); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRelativeMove(w http.ResponseWriter, r *http.Request) {
	var req api.ValuesRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var err error
	if len(req.Axes) == 0 {
		err = s.remap.RelativeMoveAll(req.Values)
	} else {
		err = s.remap.RelativeMoveSelected(req.Axes, req.Values)
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleStop(w http.ResponseWriter, r *http.Request) {
	var req api.AxesRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var err error
	if len(req.Axes) == 0 {
		err = s.remap.StopAll()
	} else {
		err = s.remap.StopSelected(req.Axes)
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMotionDone(w http.ResponseWriter, r *http.Request) {
	axes, err := parseAxes(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var done bool
	if axes == nil {
		done, err = s.remap.CheckMotionDoneAll()
	} else {
		done, err = s.remap.CheckMotionDoneSelected(axes)
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, api.MotionResponse{Done: done})
}

func (s *Server) handleGetModes(w http.ResponseWriter, r *http.Request) {
	axes, err := parseAxes(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var modes []device.ControlMode
	if axes == nil {
		var n int
		if n, err = s.remap.Axes(); err != nil {
			s.writeError(w, r, err)
			return
		}
		modes = make([]device.ControlMode, n)
		err = s.remap.ControlModeAll(modes)
	} else {
		modes = make([]device.ControlMode, len(axes))
		err = s.remap.ControlModeSelected(axes, modes)
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out := api.ModesResponse{Axes: axes, Modes: make([]string, len(modes))}
	for i, m := range modes {
		out.Modes[i] = m.String()
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSetModes(w http.ResponseWriter, r *http.Request) {
	var req api.ModesRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	var err error
	if req.All != "" {
		var m device.ControlMode
		if m, err = device.ParseControlMode(req.All); err != nil {
			s.writeError(w, r, badRequest("%v", err))
			return
		}
		err = s.remap.SetControlModeAllAxes(m)
	} else {
		modes := make([]device.ControlMode, len(req.Modes))
		for i, name := range req.Modes {
			if modes[i], err = device.ParseControlMode(name); err != nil {
				s.writeError(w, r, badRequest("%v", err))
				return
			}
		}
		if len(req.Axes) == 0 {
			err = s.remap.SetControlModeAll(modes)
		} else {
			err = s.remap.SetControlModeSelected(req.Axes, modes)
		}
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListVariables(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys, err := s.remap.RemoteVariablesList()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, api.VariablesResponse{Keys: keys})
}

func (s *Server) handleGetVariable(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	vals, err := s.remap.RemoteVariable(r.PathValue("key"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out := api.VariableValues{Values: make([]string, len(vals))}
	for i, v := range vals {
		out.Values[i] = string(v)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSetVariable(w http.ResponseWriter, r *http.Request) {
	var req api.VariableValues
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	vals := make([][]byte, len(req.Values))
	for i, v := range req.Values {
		vals[i] = []byte(v)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.remap.SetRemoteVariable(r.PathValue("key"), vals); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// calibrationActions dispatch POST /calibration/{action}. Actions that take
// a joint fall back to the whole part when the request names none.
var calibrationActions = map[string]func(r *remap.Remapper, req api.CalibrationRequest) error{
	"calibrate": func(r *remap.Remapper, req api.CalibrationRequest) error {
		if req.Axis != nil {
			return r.CalibrateSingleJoint(*req.Axis)
		}
		return r.CalibrateWholePart()
	},
	"homing": func(r *remap.Remapper, req api.CalibrationRequest) error {
		if req.Axis != nil {
			return r.HomingSingleJoint(*req.Axis)
		}
		return r.HomingWholePart()
	},
	"park": func(r *remap.Remapper, req api.CalibrationRequest) error {
		if req.Axis != nil {
			return r.ParkSingleJoint(*req.Axis, req.Wait)
		}
		return r.ParkWholePart()
	},
	"quit-calibrate": func(r *remap.Remapper, _ api.CalibrationRequest) error { return r.QuitCalibrate() },
	"quit-park":      func(r *remap.Remapper, _ api.CalibrationRequest) error { return r.QuitPark() },
	"abort":          func(r *remap.Remapper, _ api.CalibrationRequest) error { return r.AbortCalibration() },
	"abort-park":     func(r *remap.Remapper, _ api.CalibrationRequest) error { return r.AbortPark() },
}

func (s *Server) handleCalibration(w http.ResponseWriter, r *http.Request) {
	action := r.PathValue("action")
	call, ok := calibrationActions[action]
	if !ok {
		writeJSON(w, http.StatusNotFound, api.ErrorResponse{Error: fmt.Sprintf("unknown calibration action %q", action)})
		return
	}
	var req api.CalibrationRequest
	if r.ContentLength != 0 {
		if err := decode(r, &req); err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := call(s.remap, req); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDetach(w http.ResponseWriter, r *http.Request) {
	if err := s.Detach(); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
