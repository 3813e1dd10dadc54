// Package config loads the settings of a c45 run.
//
// Settings are resolved with priority env > file > defaults and then checked
// with go-playground/validator struct tags.
package config

import (
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/YuminosukeSato/c45/core/dataset"
	"github.com/YuminosukeSato/c45/pkg/errors"
	"github.com/YuminosukeSato/c45/sklearn/tree"
)

// DefaultOutput is where the rules are written when no output is given.
const DefaultOutput = "C45_Rules.txt"

// Config holds every setting of a grow or test run.
type Config struct {
	// Train is the training CSV.
	Train string `yaml:"train" validate:"required"`
	// Test is the optional held-out CSV.
	Test string `yaml:"test"`
	// Output receives the rendered rules.
	Output string `yaml:"output" validate:"required"`
	// Model, when set, receives the fitted model as gob.
	Model string `yaml:"model"`
	// Plot, when set, receives a PNG chart of the leaves.
	Plot string `yaml:"plot"`

	// Target is a column name or a 1-based column number.
	Target                string  `yaml:"target" validate:"required"`
	MinContinuousNodeSize int     `yaml:"min_continuous_node_size" validate:"gte=0"`
	MaxTreeDepth          int     `yaml:"max_tree_depth" validate:"gte=0"`
	MinSplitGain          float64 `yaml:"min_split_gain" validate:"gte=0"`

	LogLevel string `yaml:"log_level" validate:"oneof=debug info warn warning error"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report yaml names so errors match what users write
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("yaml"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// Default returns the settings used when nothing else is given.
func Default() Config {
	return Config{
		Output:   DefaultOutput,
		LogLevel: "info",
	}
}

// Load resolves settings from defaults, the YAML file at path and the
// environment. A missing file keeps the defaults; an empty path skips the
// file. Load does not validate, so flags can still be layered on top.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return cfg, errors.Wrapf(err, "load config file %s", path)
		}
	}
	if err := loadEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func loadEnv(cfg *Config) error {
	strs := map[string]*string{
		"C45_TRAIN":     &cfg.Train,
		"C45_TEST":      &cfg.Test,
		"C45_OUTPUT":    &cfg.Output,
		"C45_MODEL":     &cfg.Model,
		"C45_PLOT":      &cfg.Plot,
		"C45_TARGET":    &cfg.Target,
		"C45_LOG_LEVEL": &cfg.LogLevel,
	}
	for key, dst := range strs {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	ints := map[string]*int{
		"C45_MIN_NODE_SIZE": &cfg.MinContinuousNodeSize,
		"C45_MAX_DEPTH":     &cfg.MaxTreeDepth,
	}
	for key, dst := range ints {
		if v := os.Getenv(key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return errors.NewValidationError(key, "must be an integer", v)
			}
			*dst = n
		}
	}

	if v := os.Getenv("C45_MIN_GAIN"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return errors.NewValidationError("C45_MIN_GAIN", "must be a number", v)
		}
		cfg.MinSplitGain = f
	}
	return nil
}

// Validate checks the settings of a grow run.
func (c Config) Validate() error {
	return translate(validate.Struct(c))
}

// ValidateEvaluation checks the settings of a test run, which needs a model
// and a test set but no training data.
func (c Config) ValidateEvaluation() error {
	if err := translate(validate.StructPartial(c, "LogLevel")); err != nil {
		return err
	}
	if c.Model == "" {
		return errors.NewValidationError("model", "required", c.Model)
	}
	if c.Test == "" {
		return errors.NewValidationError("test", "required", c.Test)
	}
	return nil
}

func translate(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		reason := fe.Tag()
		if fe.Param() != "" {
			reason += "=" + fe.Param()
		}
		return errors.NewValidationError(fe.Field(), reason, fe.Value())
	}
	return errors.Wrap(err, "validate config")
}

// TreeConfig converts the settings into induction parameters for the
// resolved target name.
func (c Config) TreeConfig(target string) tree.Config {
	return tree.Config{
		Target:                target,
		MinContinuousNodeSize: c.MinContinuousNodeSize,
		MaxTreeDepth:          c.MaxTreeDepth,
		MinSplitGain:          c.MinSplitGain,
	}
}

// ResolveTarget maps target to a column name of t. A header name is used
// as is; otherwise an integer is read as a 1-based column number.
func ResolveTarget(t *dataset.Table, target string) (string, error) {
	if t.HeaderIndex(target) != dataset.NotFound {
		return strings.ToLower(target), nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(target))
	if err != nil {
		return "", errors.NewAttributeNotFoundError("ResolveTarget", target)
	}
	if n < 1 || n > t.Width() {
		return "", errors.NewValidationError("target", "column number must be between 1 and "+strconv.Itoa(t.Width()), n)
	}
	return t.Attribute(n - 1), nil
}
