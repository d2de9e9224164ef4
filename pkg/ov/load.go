package ov

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
)

const (
	DefaultColumns = 720
	DefaultQuality = 95
)

func Default() RenderOptions {
	return RenderOptions{
		Columns:       DefaultColumns,
		Scaling:       "linear",
		Interpolation: "bilinear",
		Border:        "constant",
		Fill:          "#000000",
		Quality:       DefaultQuality,
	}
}

// Load reads a JSON options file over the defaults.
func Load(file string) (RenderOptions, error) {
	opts := Default()
	data, err := os.ReadFile(file)
	if err != nil {
		return opts, err
	}
	if err = json.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("parse %s: %w", file, err)
	}

	return opts, nil
}
