package simboard

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamware/axisremap/internal/device"
)

// TestNew tests board construction
func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
		names   []string
	}{
		{
			name:  "default names",
			cfg:   Config{Key: "arm", Axes: 2},
			names: []string{"arm_0", "arm_1"},
		},
		{
			name:  "partial names",
			cfg:   Config{Key: "arm", Axes: 3, Names: []string{"shoulder"}},
			names: []string{"shoulder", "arm_1", "arm_2"},
		},
		{
			name:    "zero axes",
			cfg:     Config{Key: "arm"},
			wantErr: true,
		},
		{
			name:    "too many names",
			cfg:     Config{Key: "arm", Axes: 1, Names: []string{"a", "b"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := New(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			n, err := b.Axes()
			require.NoError(t, err)
			assert.Equal(t, tt.cfg.Axes, n)
			for j, want := range tt.names {
				got, err := b.AxisName(j)
				require.NoError(t, err)
				assert.Equal(t, want, got)
			}
		})
	}
}

func TestPassThrough(t *testing.T) {
	b := MustNew(Config{Key: "leg", Axes: 3})

	require.NoError(t, b.PositionMove(1, 12.5))
	enc, err := b.Encoder(1)
	require.NoError(t, err)
	assert.Equal(t, 12.5, enc)

	require.NoError(t, b.RelativeMove(1, 2.5))
	target, err := b.TargetPosition(1)
	require.NoError(t, err)
	assert.Equal(t, 15.0, target)

	done, err := b.CheckMotionDone(1)
	require.NoError(t, err)
	assert.True(t, done)

	require.NoError(t, b.SetRefTorque(2, 1.5))
	torque, err := b.Torque(2)
	require.NoError(t, err)
	assert.Equal(t, 1.5, torque)

	require.NoError(t, b.SetPWMLimit(0, 0.5))
	require.NoError(t, b.SetRefDutyCycle(0, 0.8))
	duty, err := b.DutyCycle(0)
	require.NoError(t, err)
	assert.Equal(t, 0.5, duty)
}

func TestBatchedForms(t *testing.T) {
	b := MustNew(Config{Key: "leg", Axes: 4})

	require.NoError(t, b.SetRefSpeedsMany([]int{3, 0}, []float64{30, 10}))
	out := make([]float64, 2)
	require.NoError(t, b.RefSpeedsMany([]int{0, 3}, out))
	assert.Equal(t, []float64{10, 30}, out)

	assert.ErrorIs(t, b.SetRefSpeedsMany([]int{0}, []float64{1, 2}), ErrBadBatch)

	// An invalid index leaves every axis untouched.
	err := b.PositionMoveMany([]int{0, 9}, []float64{1, 2})
	assert.ErrorIs(t, err, ErrJointRange)
	pos, _ := b.TargetPosition(0)
	assert.Zero(t, pos)

	assert.Equal(t, uint64(4), b.Stats().Batches)
}

func TestFaultAndRelease(t *testing.T) {
	b := MustNew(Config{Key: "hand", Axes: 1})
	boom := errors.New("boom")

	b.SetFault(boom)
	_, err := b.Encoder(0)
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, b.SetControlMode(0, device.ControlModeVelocity), boom)
	_, err = b.Axes()
	assert.ErrorIs(t, err, boom)

	b.SetFault(nil)
	require.NoError(t, b.SetControlMode(0, device.ControlModeVelocity))

	require.NoError(t, b.Release())
	assert.True(t, b.Released())
	_, err = b.ControlMode(0)
	assert.ErrorIs(t, err, ErrReleased)
	_, err = b.RemoteVariablesList()
	assert.ErrorIs(t, err, ErrReleased)
}

func TestPid(t *testing.T) {
	b := MustNew(Config{Key: "arm", Axes: 1})
	gains := device.Pid{Kp: 2, Scale: 1}

	require.NoError(t, b.SetPid(device.PidTorque, 0, gains))
	require.NoError(t, b.SetPidReference(device.PidTorque, 0, 3))
	require.NoError(t, b.SetPidOffset(device.PidTorque, 0, 1))

	out, err := b.PidOutput(device.PidTorque, 0)
	require.NoError(t, err)
	assert.Zero(t, out, "disabled loop produces no output")

	require.NoError(t, b.EnablePid(device.PidTorque, 0))
	out, err = b.PidOutput(device.PidTorque, 0)
	require.NoError(t, err)
	assert.Equal(t, 7.0, out)

	got, err := b.Pid(device.PidPosition, 0)
	require.NoError(t, err)
	assert.Equal(t, device.Pid{Scale: 1}, got, "loops are independent")
}

func TestCalibration(t *testing.T) {
	b := MustNew(Config{Key: "arm", Axes: 2})

	assert.ErrorIs(t, b.CalibrationDone(0), ErrNotCalibrated)
	require.NoError(t, b.CalibrateAxisWithParams(0, 3, 1, 2, 3))
	assert.NoError(t, b.CalibrationDone(0))

	require.NoError(t, b.ParkWholePart())
	for j := 0; j < 2; j++ {
		parked, err := b.IsParked(j)
		require.NoError(t, err)
		assert.True(t, parked)
	}
}

func TestRemoteVariables(t *testing.T) {
	b := MustNew(Config{Key: "arm", Axes: 1, Variables: map[string]string{"shift": "8"}})

	v, err := b.RemoteVariable("shift")
	require.NoError(t, err)
	assert.Equal(t, []byte("8"), v)

	require.NoError(t, b.SetRemoteVariable("filter", []byte("3")))
	keys, err := b.RemoteVariablesList()
	require.NoError(t, err)
	assert.Equal(t, []string{"filter", "shift"}, keys)
}

func TestStampAdvancesOnWrite(t *testing.T) {
	b := MustNew(Config{Key: "arm", Axes: 1})
	assert.False(t, b.LastInputStamp().IsValid())

	require.NoError(t, b.SetEncoder(0, 1))
	first := b.LastInputStamp()
	assert.True(t, first.IsValid())

	require.NoError(t, b.SetEncoder(0, 2))
	assert.Equal(t, first.Seq+1, b.LastInputStamp().Seq)
}

func TestCalibratorRecordsCalls(t *testing.T) {
	c := NewCalibrator()
	require.NoError(t, c.CalibrateSingleJoint(4))
	require.NoError(t, c.ParkSingleJoint(1, true))
	require.NoError(t, c.QuitPark())

	assert.Equal(t, []string{"calibrate 4", "park 1 wait=true", "quit park"}, c.Calls())
}

func TestConcurrentAccess(t *testing.T) {
	b := MustNew(Config{Key: "arm", Axes: 8})

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(j int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				assert.NoError(t, b.PositionMove(j, float64(i)))
				_, err := b.Encoder(j)
				assert.NoError(t, err)
			}
		}(w)
	}
	wg.Wait()

	assert.Equal(t, uint64(800), b.Stats().Writes)
	assert.Equal(t, uint64(800), b.Stats().Reads)
}
