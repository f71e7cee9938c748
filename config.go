package tilebatch

import (
	"bytes"
	"encoding/json"
	"io/fs"

	"github.com/pkg/errors"
)

// WindowConfig is the window size in pixels.
type WindowConfig struct {
	Width  int `json:"w"`
	Height int `json:"h"`
}

// CameraConfig tunes camera movement.
type CameraConfig struct {
	Speed           float64 `json:"speed"`
	FollowLerp      float64 `json:"follow_lerp"`
	RecenterSeconds float64 `json:"recenter_seconds"`
}

// GenerateConfig enables the procedural level in place of the level file.
type GenerateConfig struct {
	Enabled bool   `json:"enabled"`
	Cols    int    `json:"cols"`
	Rows    int    `json:"rows"`
	Seed    int64  `json:"seed"`
	Tileset string `json:"tileset"`
}

// Config is the demo configuration. Every value is threaded explicitly to the
// component that needs it.
type Config struct {
	Title        string         `json:"title"`
	Window       WindowConfig   `json:"window"`
	Assets       string         `json:"assets"`
	TilesetsFile string         `json:"tilesets_file"`
	LevelFile    string         `json:"level_file"`
	PlayerImage  string         `json:"player_image"`
	Screenshots  string         `json:"screenshots_dir"`
	Motion       MotionConfig   `json:"motion"`
	Camera       CameraConfig   `json:"camera"`
	Debug        bool           `json:"debug"`
	Strict       bool           `json:"strict"`
	Generate     GenerateConfig `json:"generate"`
}

// DefaultConfig returns an 800x600 window, the standard motion tuning and
// the asset layout used by examples/walker.
func DefaultConfig() Config {
	return Config{
		Title:        "Tile Walker",
		Window:       WindowConfig{Width: 800, Height: 600},
		Assets:       "examples/_assets",
		TilesetsFile: "tilesets.json",
		LevelFile:    "level.json",
		PlayerImage:  "player.png",
		Screenshots:  "screenshots",
		Motion:       DefaultMotionConfig(),
		Camera: CameraConfig{
			Speed:           300,
			FollowLerp:      0.15,
			RecenterSeconds: 0.6,
		},
		Generate: GenerateConfig{
			Cols:    64,
			Rows:    48,
			Seed:    1,
			Tileset: "ground",
		},
	}
}

// ParseConfig overlays JSON onto DefaultConfig. Keys absent from data keep
// their defaults; unknown keys are an error.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "parse config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and parses a config file from fsys.
func LoadConfig(fsys fs.FS, path string) (Config, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "read config %q", path)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, errors.Wrapf(err, "config %q", path)
	}
	return cfg, nil
}

// Validate reports the first invalid value as a *ConfigError.
func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return configErrorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	case c.Motion.Step <= 0:
		return configErrorf("motion step %v must be positive", c.Motion.Step)
	case c.Motion.MaxVelX <= 0 || c.Motion.MaxVelY <= 0:
		return configErrorf("max velocity %vx%v must be positive", c.Motion.MaxVelX, c.Motion.MaxVelY)
	case c.Camera.Speed < 0:
		return configErrorf("camera speed %v must not be negative", c.Camera.Speed)
	case c.Camera.FollowLerp <= 0 || c.Camera.FollowLerp > 1:
		return configErrorf("camera follow_lerp %v must be in (0, 1]", c.Camera.FollowLerp)
	case c.Camera.RecenterSeconds <= 0:
		return configErrorf("camera recenter_seconds %v must be positive", c.Camera.RecenterSeconds)
	case c.Screenshots == "":
		return configErrorf("screenshots_dir must not be empty")
	case c.Generate.Enabled && (c.Generate.Cols <= 0 || c.Generate.Rows <= 0):
		return configErrorf("generate size %dx%d must be positive", c.Generate.Cols, c.Generate.Rows)
	}
	return nil
}

// NewCamera returns a camera sized to the window with the configured speed
// and follow factor.
func (c Config) NewCamera() *Camera {
	cam := NewCamera(float64(c.Window.Width), float64(c.Window.Height))
	cam.Speed = c.Camera.Speed
	cam.FollowLerp = c.Camera.FollowLerp
	return cam
}
