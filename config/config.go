package config

import (
	"math"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"kuanb/gosm-network/osm"
)

// Config holds the tables that drive network reduction.
type Config struct {
	Network NetworkConfig      `toml:"network"`
	Speeds  map[string]float64 `toml:"speeds"`
}

type NetworkConfig struct {
	// CategoryTag is the key holding both the junction kind of a node and
	// the road class of a way.
	CategoryTag string `toml:"category_tag"`
	NameTag     string `toml:"name_tag"`
	// JunctionKinds lists the category values that make a node a junction.
	JunctionKinds []string `toml:"junction_kinds"`
}

// Defaults returns a Config populated with built-in default values.
// Speeds are in miles per hour.
func Defaults() *Config {
	return &Config{
		Network: NetworkConfig{
			CategoryTag: "highway",
			NameTag:     "name",
			JunctionKinds: []string{
				"traffic_signals",
				"crossing",
				"turning_circle",
				"motorway_junction",
			},
		},
		Speeds: map[string]float64{
			"residential":  20.0,
			"primary":      40.0,
			"primary_link": 40.0,
			"secondary":    35.0,
			"tertiary":     30.0,
			"footway":      35.0,
			"service":      35.0,
			"motorway":     70.0,
		},
	}
}

// Load reads a TOML config file. If the file does not exist, built-in
// defaults are returned without error. Speeds in the file are merged over
// the defaults; a non-empty junction_kinds list replaces them.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	var file Config
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return nil, errors.Wrapf(err, "decoding %s", path)
	}
	cfg.merge(&file)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) merge(o *Config) {
	if o.Network.CategoryTag != "" {
		c.Network.CategoryTag = o.Network.CategoryTag
	}
	if o.Network.NameTag != "" {
		c.Network.NameTag = o.Network.NameTag
	}
	if len(o.Network.JunctionKinds) > 0 {
		c.Network.JunctionKinds = o.Network.JunctionKinds
	}
	for class, mph := range o.Speeds {
		c.Speeds[class] = mph
	}
}

// Validate reports a configuration error for tables the reducer cannot use.
func (c *Config) Validate() error {
	switch {
	case c.Network.CategoryTag == "":
		return &osm.Error{Kind: osm.KindConfiguration, Err: errors.New("category_tag is empty")}
	case c.Network.NameTag == "":
		return &osm.Error{Kind: osm.KindConfiguration, Err: errors.New("name_tag is empty")}
	case len(c.Network.JunctionKinds) == 0:
		return &osm.Error{Kind: osm.KindConfiguration, Err: errors.New("junction_kinds is empty")}
	}
	for class, mph := range c.Speeds {
		if math.IsNaN(mph) || math.IsInf(mph, 0) || mph <= 0 {
			return &osm.Error{
				Kind:  osm.KindConfiguration,
				Value: class,
				Err:   errors.Errorf("speed must be positive, got %v", mph),
			}
		}
	}
	return nil
}
