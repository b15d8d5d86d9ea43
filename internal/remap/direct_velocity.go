package remap

import "github.com/dreamware/axisremap/internal/device"

// SetPosition streams a position set point to axis j.
func (r *Remapper) SetPosition(j int, ref float64) error {
	return set(r, j, capPositionDirect, device.PositionDirect.SetPosition, ref)
}

func (r *Remapper) SetPositionAll(refs []float64) error {
	return setMany(r, everyAxis, capPositionDirect, floatScratch, device.PositionDirect.SetPositionsMany, refs)
}

func (r *Remapper) SetPositionSelected(axes []int, refs []float64) error {
	return setMany(r, subset(axes), capPositionDirect, floatScratch, device.PositionDirect.SetPositionsMany, refs)
}

// RefPosition returns the last streamed set point of axis j.
func (r *Remapper) RefPosition(j int) (float64, error) {
	return query(r, j, capPositionDirect, device.PositionDirect.RefPosition)
}

func (r *Remapper) RefPositionAll(out []float64) error {
	return getMany(r, everyAxis, capPositionDirect, floatScratch, device.PositionDirect.RefPositionsMany, out)
}

func (r *Remapper) RefPositionSelected(axes []int, out []float64) error {
	return getMany(r, subset(axes), capPositionDirect, floatScratch, device.PositionDirect.RefPositionsMany, out)
}

// VelocityMove commands a velocity on axis j.
func (r *Remapper) VelocityMove(j int, v float64) error {
	return set(r, j, capVelocity, device.VelocityControl.VelocityMove, v)
}

func (r *Remapper) VelocityMoveAll(vs []float64) error {
	return setMany(r, everyAxis, capVelocity, floatScratch, device.VelocityControl.VelocityMoveMany, vs)
}

func (r *Remapper) VelocityMoveSelected(axes []int, vs []float64) error {
	return setMany(r, subset(axes), capVelocity, floatScratch, device.VelocityControl.VelocityMoveMany, vs)
}

func (r *Remapper) RefVelocity(j int) (float64, error) {
	return query(r, j, capVelocity, device.VelocityControl.RefVelocity)
}

func (r *Remapper) RefVelocityAll(out []float64) error {
	return getMany(r, everyAxis, capVelocity, floatScratch, device.VelocityControl.RefVelocitiesMany, out)
}

func (r *Remapper) RefVelocitySelected(axes []int, out []float64) error {
	return getMany(r, subset(axes), capVelocity, floatScratch, device.VelocityControl.RefVelocitiesMany, out)
}
