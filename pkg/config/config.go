// Package config turns the declarative tweak table into a tweak.Catalog.
// The table ships embedded in the binary; a replacement file can be given
// on the command line to override it wholesale.
package config

import (
	_ "embed"
	"os"
	"regexp"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/tweakgen/tweakgen/pkg/errors"
	"github.com/tweakgen/tweakgen/pkg/logging"
	"github.com/tweakgen/tweakgen/pkg/tweak"
)

var log = logging.GetLogger("config")

//go:embed embedded/tweaks.toml
var defaultTweaks []byte

// defaultPrecision is the decimal places for scale-float actions that do
// not set one.
const defaultPrecision = 6

var macroNameRe = regexp.MustCompile(`^[a-z_]+$`)

// Config is the parsed tweak table.
type Config struct {
	Macros  map[string]MacroConfig `toml:"macros"`
	GodMode *GodModeConfig         `toml:"godmode"`
	Fishing *FishingConfig         `toml:"fishing"`
}

// MacroConfig configures a single-macro action.
type MacroConfig struct {
	Action    string      `toml:"action"`
	Factor    float64     `toml:"factor"`
	Inverse   bool        `toml:"inverse"`
	Precision int         `toml:"precision"`
	Value     interface{} `toml:"value"`
	Disabled  bool        `toml:"disabled"`
}

// GodModeConfig configures the shared stepped action bound to the three
// godmode_* macros.
type GodModeConfig struct {
	Start    float64 `toml:"start"`
	End      float64 `toml:"end"`
	Steps    int     `toml:"steps"`
	Disabled bool    `toml:"disabled"`
}

// FishingConfig configures the shared clamp action bound to the two
// fishing_* macros.
type FishingConfig struct {
	MinChance float64 `toml:"min_chance"`
	MinRooms  int     `toml:"min_rooms"`
	Disabled  bool    `toml:"disabled"`
}

// Default parses the embedded tweak table.
func Default() (*Config, error) {
	return parse(defaultTweaks, "embedded defaults")
}

// Load parses a tweak table from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileRead, "cannot read tweak table %s", path)
	}
	return parse(data, path)
}

// LoadCatalog builds the catalog from path, or from the embedded defaults
// when path is empty.
func LoadCatalog(path string) (*tweak.Catalog, error) {
	var cfg *Config
	var err error
	if path == "" {
		cfg, err = Default()
	} else {
		cfg, err = Load(path)
	}
	if err != nil {
		return nil, err
	}
	return cfg.Catalog()
}

func parse(data []byte, source string) (*Config, error) {
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "cannot parse tweak table %s", source)
	}
	log.Debug().Str("source", source).Int("macros", len(cfg.Macros)).Msg("Tweak table parsed")
	return &cfg, nil
}

// Catalog validates the table and builds the immutable catalog from it.
func (c *Config) Catalog() (*tweak.Catalog, error) {
	actions := make(map[string]tweak.Action, len(c.Macros))

	for name, mc := range c.Macros {
		if !macroNameRe.MatchString(name) {
			return nil, errors.Newf(errors.ErrConfigInvalid,
				"macro name %q is not lowercase letters and underscores", name)
		}
		action, err := mc.action(name)
		if err != nil {
			return nil, err
		}
		actions[name] = action
	}

	if c.GodMode != nil {
		if c.GodMode.Steps <= 0 {
			return nil, errors.Newf(errors.ErrConfigInvalid,
				"godmode steps must be positive, got %d", c.GodMode.Steps)
		}
		var action tweak.Action = tweak.NewStepped(c.GodMode.Start, c.GodMode.End, c.GodMode.Steps)
		if c.GodMode.Disabled {
			action = tweak.Disabled(action)
		}
		actions[tweak.MacroGodModeBase] = action
		actions[tweak.MacroGodModePerDeath] = action
		actions[tweak.MacroGodModeDeathCap] = action
	}

	if c.Fishing != nil {
		var action tweak.Action = tweak.NewClamp(c.Fishing.MinChance, c.Fishing.MinRooms)
		if c.Fishing.Disabled {
			action = tweak.Disabled(action)
		}
		actions[tweak.MacroFishingChance] = action
		actions[tweak.MacroFishingRoomSpace] = action
	}

	return tweak.NewCatalog(actions), nil
}

func (mc MacroConfig) action(name string) (tweak.Action, error) {
	var action tweak.Action

	switch mc.Action {
	case "scale-int", "scale-float":
		if mc.Factor == 0 {
			return nil, errors.Newf(errors.ErrConfigInvalid,
				"macro %s: scale action needs a non-zero factor", name)
		}
		if mc.Action == "scale-int" {
			action = tweak.NewScaleInt(mc.Factor, mc.Inverse)
		} else {
			precision := mc.Precision
			if precision == 0 {
				precision = defaultPrecision
			}
			action = tweak.NewScaleFloat(mc.Factor, mc.Inverse, precision)
		}
	case "fixed":
		if mc.Value == nil {
			return nil, errors.Newf(errors.ErrConfigInvalid,
				"macro %s: fixed action needs a value", name)
		}
		action = tweak.NewFixed(mc.Value)
	case "default":
		action = tweak.DefaultAction{}
	default:
		return nil, errors.Newf(errors.ErrConfigInvalid,
			"macro %s: unknown action %q", name, mc.Action)
	}

	if mc.Disabled {
		action = tweak.Disabled(action)
	}
	return action, nil
}
