package config

import "sort"

// Profiles are named starting configurations.
var Profiles = map[string]*Config{
	"small": {
		Rows: 20, Cols: 40, IntervalMs: 150, Density: 0.3, Theme: "classic",
	},
	"classic": {
		Rows: 50, Cols: 80, IntervalMs: 200, Density: 0.25, Theme: "classic",
	},
	"wide": {
		Rows: 40, Cols: 120, IntervalMs: 100, Density: 0.2, Theme: "phosphor",
	},
	"glider": {
		Rows: 30, Cols: 60, IntervalMs: 120, Density: 0.25, Preset: "glider", Theme: "ocean",
	},
}

// GetProfile returns a copy of the named profile, or nil.
func GetProfile(name string) *Config {
	p, ok := Profiles[name]
	if !ok {
		return nil
	}
	cfg := *p
	cfg.History = DefaultHistory
	cfg.Log = LogConfig{Level: DefaultLogLevel}
	return &cfg
}

func ListProfiles() []string {
	names := make([]string, 0, len(Profiles))
	for name := range Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
