package config

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where the renderer looks for its config, relative to the working directory.
const DefaultPath = "assets/config.yaml"

// ErrInvalid is returned when a config document does not match the schema.
var ErrInvalid = errors.New("config: invalid document")

//go:embed schema.json
var schemaJSON string

type Config struct {
	Window   Window   `yaml:"window"`
	Paths    Paths    `yaml:"paths"`
	Camera   Camera   `yaml:"camera"`
	Lighting Lighting `yaml:"lighting"`
	Audio    Audio    `yaml:"audio"`
	Debug    Debug    `yaml:"debug"`
}

type Window struct {
	Title      string   `yaml:"title"`
	Width      int      `yaml:"width"`
	Height     int      `yaml:"height"`
	TargetFPS  int      `yaml:"target_fps"`
	Resizable  bool     `yaml:"resizable"`
	ClearColor [4]uint8 `yaml:"clear_color"`
}

// Paths locates runtime assets. Textures and sounds are optional: a missing
// file is logged and its sprite or sound skipped.
type Paths struct {
	Levels         []string `yaml:"levels"`
	Models         string   `yaml:"models"`
	VertexShader   string   `yaml:"vertex_shader"`
	PixelShader    string   `yaml:"pixel_shader"`
	HUD            string   `yaml:"hud"`
	Font           string   `yaml:"font"`
	Textures       string   `yaml:"textures"`
	HUDTextures    []string `yaml:"hud_textures"`
	FontTexture    int      `yaml:"font_texture"`
	LoadingSound   string   `yaml:"loading_sound"`
	Music          string   `yaml:"music"`
	LevelLoaderLog string   `yaml:"level_loader_log"`
}

type Camera struct {
	FOVDegrees      float32 `yaml:"fov_degrees"`
	Near            float32 `yaml:"near"`
	Far             float32 `yaml:"far"`
	MoveSpeed       float32 `yaml:"move_speed"`
	LookSensitivity float32 `yaml:"look_sensitivity"`
	StickTurnSpeed  float32 `yaml:"stick_turn_speed"`
	OrthoExtent     float32 `yaml:"ortho_extent"`
}

type Lighting struct {
	Direction [3]float32 `yaml:"direction"`
	Color     [4]float32 `yaml:"color"`
	Ambient   [4]float32 `yaml:"ambient"`
}

type Audio struct {
	Enabled     bool    `yaml:"enabled"`
	CueVolume   float32 `yaml:"cue_volume"`
	MusicVolume float32 `yaml:"music_volume"`
}

type Debug struct {
	ToggleCooldownFrames int  `yaml:"toggle_cooldown_frames"`
	FrustumCulling       bool `yaml:"frustum_culling"`
	Overlay              bool `yaml:"overlay"`
}

// Default returns the built-in configuration. Load decodes over it, so a
// config file only needs the keys it changes.
func Default() Config {
	return Config{
		Window: Window{
			Title:      "Level Renderer",
			Width:      800,
			Height:     600,
			TargetFPS:  60,
			Resizable:  true,
			ClearColor: [4]uint8{0, 0, 25, 255},
		},
		Paths: Paths{
			Levels:       []string{"assets/levels/GameLevel.txt", "assets/levels/GameLevelTest.txt"},
			Models:       "assets/models",
			VertexShader: "assets/shaders/level.vs",
			PixelShader:  "assets/shaders/level.fs",
			HUD:          "assets/xml/hud.xml",
			Font:         "assets/xml/font_consolas_32.xml",
			Textures:     "assets/textures",
			HUDTextures: []string{
				"HUD_Sharp_backplate.dds",
				"Health_left.dds",
				"Health_right.dds",
				"Mana_left.dds",
				"Mana_right.dds",
				"Center_top.dds",
				"font_consolas_32.dds",
			},
			FontTexture:    6,
			LoadingSound:   "assets/sounds/loadingFX.wav",
			Music:          "assets/sounds/music.wav",
			LevelLoaderLog: "logs/LevelLoaderLog.txt",
		},
		Camera: Camera{
			FOVDegrees:      65,
			Near:            0.1,
			Far:             100,
			MoveSpeed:       4,
			LookSensitivity: 0.05,
			StickTurnSpeed:  3.14,
			OrthoExtent:     5,
		},
		Lighting: Lighting{
			Direction: [3]float32{-1, -1, -2},
			Color:     [4]float32{229.0 / 255, 229.0 / 255, 1, 1},
			Ambient:   [4]float32{63.75 / 255, 63.75 / 255, 89.25 / 255, 0},
		},
		Audio: Audio{
			Enabled:     true,
			CueVolume:   0.1,
			MusicVolume: 0.2,
		},
		Debug: Debug{
			ToggleCooldownFrames: 30,
			FrustumCulling:       true,
			Overlay:              true,
		},
	}
}

// Load reads a YAML config file, validates it and decodes it over Default().
// An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := Parse(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return cfg, nil
}

// Parse validates raw YAML against the schema and decodes it into cfg.
// Fields absent from raw keep their current value.
func Parse(raw []byte, cfg *Config) error {
	if err := validate(raw); err != nil {
		return err
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	return cfg.check()
}

var compiledSchema *jsonschema.Schema

func schema() (*jsonschema.Schema, error) {
	if compiledSchema != nil {
		return compiledSchema, nil
	}
	s, err := jsonschema.CompileString("config.schema.json", schemaJSON)
	if err != nil {
		return nil, fmt.Errorf("compile config schema: %w", err)
	}
	compiledSchema = s
	return s, nil
}

// validate checks the YAML document against the embedded JSON schema. The
// document goes through JSON so the validator sees plain JSON values.
func validate(raw []byte) error {
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	if doc == nil {
		return nil
	}
	js, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("convert config: %w", err)
	}
	var v any
	if err := json.Unmarshal(js, &v); err != nil {
		return fmt.Errorf("convert config: %w", err)
	}
	s, err := schema()
	if err != nil {
		return err
	}
	if err := s.Validate(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// check enforces the cross-field rules the schema cannot express.
func (c *Config) check() error {
	if len(c.Paths.Levels) == 0 {
		return fmt.Errorf("%w: no levels configured", ErrInvalid)
	}
	if c.Camera.Near >= c.Camera.Far {
		return fmt.Errorf("%w: camera near %.3f must be less than far %.3f", ErrInvalid, c.Camera.Near, c.Camera.Far)
	}
	if n := len(c.Paths.HUDTextures); n > 0 && (c.Paths.FontTexture < 0 || c.Paths.FontTexture >= n) {
		return fmt.Errorf("%w: font_texture %d out of range [0,%d)", ErrInvalid, c.Paths.FontTexture, n)
	}
	return nil
}

// TexturePaths returns the HUD texture file paths joined with the textures directory.
func (c *Config) TexturePaths() []string {
	out := make([]string, len(c.Paths.HUDTextures))
	for i, name := range c.Paths.HUDTextures {
		out[i] = filepath.Join(c.Paths.Textures, name)
	}
	return out
}
