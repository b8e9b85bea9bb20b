package gconf

import (
	"encoding/json"
	"evilground/src/base"
	"evilground/src/ground"
	"evilground/src/ui/gui/gbase/gos"
	"fmt"
	"time"
)

const DefaultFile = "evilground.json"

type Config struct {
	Theme        string  `json:"theme"`         // light/dark
	Orientation  string  `json:"orientation"`   // white/black
	Movable      string  `json:"movable"`       // both/white/black/none
	Animation    bool    `json:"animation"`     // true/false
	DurationMs   int     `json:"duration_ms"`   // animation length
	Draggable    bool    `json:"draggable"`     // true/false
	DragDistance float64 `json:"drag_distance"` // pixels before a press becomes a drag
	ShowDests    bool    `json:"show_dests"`    // true/false
	Premove      bool    `json:"premove"`       // true/false
	Highlight    bool    `json:"highlight"`     // last move and check
	WindowH      int     `json:"window_h"`      //
	WindowW      int     `json:"window_w"`      //
	Debug        bool    `json:"debug"`         // frame stats overlay
	Engine       string  `json:"engine"`        // path to a UCI engine, empty = random mover
	EngineLevel  int     `json:"engine_level"`  // 0..4

	path string
}

func defaultConfig() Config {
	return Config{
		Theme:        "light",
		Orientation:  "white",
		Movable:      "both",
		Animation:    true,
		DurationMs:   200,
		Draggable:    true,
		DragDistance: 3,
		ShowDests:    true,
		Premove:      true,
		Highlight:    true,
		WindowH:      720,
		WindowW:      720,
		Debug:        false,
		Engine:       "",
		EngineLevel:  2,
	}
}

// NewGUIConfig reads file, or returns defaults when it does not exist.
func NewGUIConfig(file string) (*Config, error) {
	if file == "" {
		file = DefaultFile
	}

	data, err := gos.ReadFile(file)
	if gos.IsNotExist(err) {
		def := defaultConfig()
		def.path = file
		return &def, nil
	} else if err != nil {
		return nil, err
	}

	c := defaultConfig()
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("error decode config: %s", err)
	}
	correctableConfig(&c)
	c.path = file

	return &c, nil
}

func (c *Config) Save() error {
	file := c.path
	if file == "" {
		file = DefaultFile
	}
	jsonData, err := json.MarshalIndent(c, "", "    ")
	if err != nil {
		return err
	}
	err = gos.WriteFile(file, jsonData)
	if err != nil {
		return err
	}
	return nil
}

// GroundConfig maps the file onto the board settings.
func (c *Config) GroundConfig() ground.Config {
	cfg := ground.DefaultConfig()
	if o, err := base.ColorFromString(c.Orientation); err == nil {
		cfg.Orientation = o
	}
	cfg.MovableColor = ground.MovableColorFromString(c.Movable)
	cfg.Animation = c.Animation
	cfg.Duration = time.Duration(c.DurationMs) * time.Millisecond
	cfg.Draggable = c.Draggable
	cfg.DragDistance = c.DragDistance
	cfg.ShowDests = c.ShowDests
	cfg.Premove = c.Premove
	cfg.Highlight = c.Highlight
	return cfg
}

func correctableConfig(c *Config) {
	def := defaultConfig()
	if c.Theme == "" || (c.Theme != "light" && c.Theme != "dark") {
		c.Theme = def.Theme
	}
	if _, err := base.ColorFromString(c.Orientation); err != nil {
		c.Orientation = def.Orientation
	}
	if ground.MovableColorFromString(c.Movable).String() != c.Movable {
		c.Movable = def.Movable
	}
	if c.DurationMs < 0 || c.DurationMs > 5000 {
		c.DurationMs = def.DurationMs
	}
	if c.DragDistance < 0 {
		c.DragDistance = def.DragDistance
	}
	if c.EngineLevel < 0 || c.EngineLevel > 4 {
		c.EngineLevel = def.EngineLevel
	}
	if c.WindowH < 200 || c.WindowW < 200 {
		c.WindowH = def.WindowH
		c.WindowW = def.WindowW
	}
}
