package remap

import "github.com/dreamware/axisremap/internal/device"

func (r *Remapper) ControlMode(j int) (device.ControlMode, error) {
	return query(r, j, capControlMode, device.ControlModes.ControlMode)
}

func (r *Remapper) ControlModeAll(out []device.ControlMode) error {
	return getMany(r, everyAxis, capControlMode, modeScratch, device.ControlModes.ControlModesMany, out)
}

func (r *Remapper) ControlModeSelected(axes []int, out []device.ControlMode) error {
	return getMany(r, subset(axes), capControlMode, modeScratch, device.ControlModes.ControlModesMany, out)
}

func (r *Remapper) SetControlMode(j int, m device.ControlMode) error {
	return set(r, j, capControlMode, device.ControlModes.SetControlMode, m)
}

func (r *Remapper) SetControlModeAll(modes []device.ControlMode) error {
	return setMany(r, everyAxis, capControlMode, modeScratch, device.ControlModes.SetControlModesMany, modes)
}

func (r *Remapper) SetControlModeSelected(axes []int, modes []device.ControlMode) error {
	return setMany(r, subset(axes), capControlMode, modeScratch, device.ControlModes.SetControlModesMany, modes)
}

// SetControlModeAllAxes puts every axis in mode m.
func (r *Remapper) SetControlModeAllAxes(m device.ControlMode) error {
	modes := make([]device.ControlMode, r.width(everyAxis))
	for i := range modes {
		modes[i] = m
	}
	return r.SetControlModeAll(modes)
}

func (r *Remapper) InteractionMode(j int) (device.InteractionMode, error) {
	return query(r, j, capInteraction, device.InteractionModes.InteractionMode)
}

func (r *Remapper) InteractionModeAll(out []device.InteractionMode) error {
	return getMany(r, everyAxis, capInteraction, interactionScratch, device.InteractionModes.InteractionModesMany, out)
}

func (r *Remapper) InteractionModeSelected(axes []int, out []device.InteractionMode) error {
	return getMany(r, subset(axes), capInteraction, interactionScratch, device.InteractionModes.InteractionModesMany, out)
}

func (r *Remapper) SetInteractionMode(j int, m device.InteractionMode) error {
	return set(r, j, capInteraction, device.InteractionModes.SetInteractionMode, m)
}

func (r *Remapper) SetInteractionModeAll(modes []device.InteractionMode) error {
	return setMany(r, everyAxis, capInteraction, interactionScratch, device.InteractionModes.SetInteractionModesMany, modes)
}

func (r *Remapper) SetInteractionModeSelected(axes []int, modes []device.InteractionMode) error {
	return setMany(r, subset(axes), capInteraction, interactionScratch, device.InteractionModes.SetInteractionModesMany, modes)
}
