// Package config reads and writes the YAML patch file describing a universe: its
// fixtures, the dimmers and composite lights on top of them, fade defaults and the
// output transport.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	commonerrors "github.com/gruntwork-io/go-commons/errors"
	"github.com/robmorgan/lcs/effect"
	"github.com/robmorgan/lcs/output"
	"github.com/robmorgan/lcs/profile"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the root of a patch file.
type Config struct {
	Logging  Logging         `yaml:"logging,omitempty"`
	Fade     Fade            `yaml:"fade,omitempty"`
	Output   output.Settings `yaml:"output,omitempty"`
	Fixtures []Fixture       `yaml:"fixtures" validate:"dive"`
	Cues     []Cue           `yaml:"cues,omitempty" validate:"dive"`
}

type Logging struct {
	Level string `yaml:"level,omitempty" validate:"omitempty,oneof=trace debug info warn warning error fatal panic"`
}

// Fade holds the defaults applied to every dimmer.
type Fade struct {
	Resolution time.Duration `yaml:"resolution,omitempty" validate:"gte=0"`
	Curve      string        `yaml:"curve,omitempty" validate:"omitempty,curve"`
}

// Fixture patches one fixture. Either Channels or Profile gives its size; a profile
// also provides the dimmer and colour offsets unless they are set explicitly.
type Fixture struct {
	Name     string `yaml:"name" validate:"required"`
	Address  int    `yaml:"address" validate:"min=1,max=512"`
	Channels int    `yaml:"channels,omitempty" validate:"gte=0,lte=512"`
	Profile  string `yaml:"profile,omitempty" validate:"omitempty,profile"`

	Dimmer *int   `yaml:"dimmer,omitempty" validate:"omitempty,gte=0"`
	Target *uint8 `yaml:"target,omitempty"`
	RGB    []int  `yaml:"rgb,omitempty" validate:"omitempty,len=3,dive,gte=0"`
	RGBW   []int  `yaml:"rgbw,omitempty" validate:"omitempty,len=4,dive,gte=0"`
}

// Cue is one step of a cue list: the dimmer levels to fade to and its times.
type Cue struct {
	Name   string           `yaml:"name" validate:"required"`
	Wait   time.Duration    `yaml:"wait,omitempty" validate:"gte=0"`
	Fade   time.Duration    `yaml:"fade,omitempty" validate:"gte=0"`
	Hold   time.Duration    `yaml:"hold,omitempty" validate:"gte=0"`
	Levels map[string]uint8 `yaml:"levels" validate:"required,min=1"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("curve", validateCurve)
	_ = validate.RegisterValidation("profile", validateProfile)
}

func validateCurve(fl validator.FieldLevel) bool {
	_, err := effect.CurveByName(fl.Field().String())
	return err == nil
}

func validateProfile(fl validator.FieldLevel) bool {
	_, err := profile.Lookup(fl.Field().String())
	return err == nil
}

// Default returns an empty patch with the dump transport.
func Default() *Config {
	return &Config{
		Logging: Logging{Level: "info"},
		Fade:    Fade{Curve: effect.DefaultCurve},
		Output:  output.Settings{Type: output.TypeDump},
	}
}

// Load reads and validates the patch file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, commonerrors.WithStackTraceAndPrefix(err, "reading config %s", path)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates a patch. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Write encodes cfg as YAML.
func Write(w io.Writer, cfg *Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}

// Save validates cfg and writes it to path.
func Save(path string, cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := Write(&buf, cfg); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return commonerrors.WithStackTraceAndPrefix(err, "writing config %s", path)
	}
	return nil
}

// FadeCurve resolves the configured curve.
func (c *Config) FadeCurve() (effect.Curve, error) {
	return effect.CurveByName(c.Fade.Curve)
}
