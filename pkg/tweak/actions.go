package tweak

import (
	"fmt"
	"math"
	"strconv"

	"github.com/tweakgen/tweakgen/pkg/errors"
)

// Macro names recognized by the multi-macro actions. These are fixed: an
// action invoked with a name outside its set is a configuration mistake
// between the catalog wiring and the template content, and is fatal.
const (
	MacroGodModeBase     = "godmode_base_scale"
	MacroGodModePerDeath = "godmode_per_death"
	MacroGodModeDeathCap = "godmode_death_cap"

	MacroFishingChance    = "fishing_chance"
	MacroFishingRoomSpace = "fishing_room_space"
)

// ScaleAction multiplies the default by a fixed factor. In integer mode the
// result is rounded half-up (x.5 always rounds away from zero, unlike Go's
// default float formatting or banker's rounding). In float mode the result
// is formatted with a fixed number of decimal places.
type ScaleAction struct {
	factor    float64
	float     bool
	precision int
}

// NewScaleInt returns an integer-mode scale action. With inverse set the
// stored factor becomes 1/factor, scaling down instead of up.
func NewScaleInt(factor float64, inverse bool) ScaleAction {
	if inverse {
		factor = 1 / factor
	}
	return ScaleAction{factor: factor}
}

// NewScaleFloat returns a float-mode scale action rounding to precision
// decimal places.
func NewScaleFloat(factor float64, inverse bool, precision int) ScaleAction {
	if inverse {
		factor = 1 / factor
	}
	return ScaleAction{factor: factor, float: true, precision: precision}
}

func (a ScaleAction) Apply(name, def string) (string, error) {
	v, err := strconv.ParseFloat(def, 64)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrValueParse,
			"macro %s: default %q is not numeric", name, def)
	}
	scaled := v * a.factor
	if a.float {
		return strconv.FormatFloat(scaled, 'f', a.precision, 64), nil
	}
	return strconv.FormatInt(int64(math.Floor(scaled+0.5)), 10), nil
}

func (a ScaleAction) Describe() string {
	if a.float {
		return fmt.Sprintf("Scale by %.*f as a float", a.precision, a.factor)
	}
	return fmt.Sprintf("Scale by %s", formatFloat(a.factor))
}

// FixedAction ignores the default and always writes a constant. The constant
// may be an integer, a float or a string.
type FixedAction struct {
	value interface{}
}

// NewFixed returns an action hardcoding the given value.
func NewFixed(value interface{}) FixedAction {
	return FixedAction{value: value}
}

func (a FixedAction) Apply(name, def string) (string, error) {
	return fmt.Sprint(a.value), nil
}

func (a FixedAction) Describe() string {
	return fmt.Sprintf("Hardcoded to: %v", a.value)
}

// SteppedAction drives the god-mode damage schedule. One instance serves the
// three godmode_* macros: the base scaling, the per-death delta derived from
// (end-start)/steps, and the death cap.
type SteppedAction struct {
	start float64
	end   float64
	steps int
	step  float64
}

// NewStepped returns a stepped action ramping from start to end over the
// given number of steps.
func NewStepped(start, end float64, steps int) SteppedAction {
	return SteppedAction{
		start: start,
		end:   end,
		steps: steps,
		step:  (end - start) / float64(steps),
	}
}

// Delta exposes the per-step increment.
func (a SteppedAction) Delta() float64 {
	return a.step
}

func (a SteppedAction) Apply(name, def string) (string, error) {
	switch name {
	case MacroGodModeBase:
		return formatFloat(a.start), nil
	case MacroGodModePerDeath:
		return formatFloat(roundTo(a.step, 6)), nil
	case MacroGodModeDeathCap:
		return strconv.Itoa(a.steps), nil
	default:
		return "", errors.Newf(errors.ErrMacroUnknown,
			"unknown god mode macro name: %s", name)
	}
}

func (a SteppedAction) Describe() string {
	return fmt.Sprintf("God mode from %d%% -> %d%%, with %d steps",
		int(a.start*100), int(a.end*100), a.steps)
}

// ClampAction improves fishing spawn odds without ever making them worse
// than the template defaults. One instance serves both fishing_* macros:
// the spawn chance gets a floor, the rooms-between-spawns count gets a cap.
type ClampAction struct {
	minChance float64
	minRooms  int
}

// NewClamp returns a clamp action with the given chance floor and room cap.
func NewClamp(minChance float64, minRooms int) ClampAction {
	return ClampAction{minChance: minChance, minRooms: minRooms}
}

func (a ClampAction) Apply(name, def string) (string, error) {
	switch name {
	case MacroFishingChance:
		v, err := strconv.ParseFloat(def, 64)
		if err != nil {
			return "", errors.Wrapf(err, errors.ErrValueParse,
				"macro %s: default %q is not numeric", name, def)
		}
		return formatFloat(math.Max(v, a.minChance)), nil
	case MacroFishingRoomSpace:
		n, err := strconv.Atoi(def)
		if err != nil {
			return "", errors.Wrapf(err, errors.ErrValueParse,
				"macro %s: default %q is not an integer", name, def)
		}
		if a.minRooms < n {
			n = a.minRooms
		}
		return strconv.Itoa(n), nil
	default:
		return "", errors.Newf(errors.ErrMacroUnknown,
			"unknown fishing macro name: %s", name)
	}
}

func (a ClampAction) Describe() string {
	return fmt.Sprintf("Fishing minimum chance: %d%%, space between rooms: %d",
		int(a.minChance*100), a.minRooms)
}

// formatFloat renders a float the short way, so 1.0 prints as "1" and 0.25
// as "0.25".
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func roundTo(v float64, places int) float64 {
	shift := math.Pow(10, float64(places))
	return math.Round(v*shift) / shift
}
