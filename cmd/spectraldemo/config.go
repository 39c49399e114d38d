package main

import (
	"os"

	"gopkg.in/yaml.v3"
)

// overrides is the optional YAML config file this demo harness accepts.
// It only ever touches the render Config, never the scene graph itself;
// scene description deserialization is a separate concern this harness
// doesn't take on.
type overrides struct {
	Passes      *int   `yaml:"passes"`
	Threads     *int   `yaml:"threads"`
	BlockWidth  *int   `yaml:"block_width"`
	BlockHeight *int   `yaml:"block_height"`
	Seed        *int64 `yaml:"seed"`
}

// loadOverrides reads path if it exists; a missing file is not an
// error, since the overlay is optional.
func loadOverrides(path string) (overrides, error) {
	var o overrides
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return o, nil
		}
		return o, err
	}
	if err := yaml.Unmarshal(data, &o); err != nil {
		return o, err
	}
	return o, nil
}

func (o overrides) apply(passes, threads, blockWidth, blockHeight *int, seed *int64) {
	if o.Passes != nil {
		*passes = *o.Passes
	}
	if o.Threads != nil {
		*threads = *o.Threads
	}
	if o.BlockWidth != nil {
		*blockWidth = *o.BlockWidth
	}
	if o.BlockHeight != nil {
		*blockHeight = *o.BlockHeight
	}
	if o.Seed != nil {
		*seed = *o.Seed
	}
}
