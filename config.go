package main

import (
	"github.com/kelseyhightower/envconfig"
)

// Config holds editor defaults, overridable through ROADLINE_* environment
// variables.
type Config struct {
	WindowWidth  int     `envconfig:"WINDOW_WIDTH" default:"1280"`
	WindowHeight int     `envconfig:"WINDOW_HEIGHT" default:"800"`
	CanvasWidth  int     `envconfig:"CANVAS_WIDTH" default:"900"`
	CanvasHeight int     `envconfig:"CANVAS_HEIGHT" default:"600"`
	GridSize     float64 `envconfig:"GRID_SIZE" default:"10"`
	SnapEnabled  bool    `envconfig:"SNAP_ENABLED" default:"true"`
	UndoDepth    int     `envconfig:"UNDO_DEPTH" default:"50"`
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("roadline", &cfg)
	return cfg, err
}
