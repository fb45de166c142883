package config

import (
	_ "embed"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"sigs.k8s.io/yaml"
)

//go:embed default/minsh.yaml
var defaultConfigData []byte

// ConfigName is the name of the configuration file minsh looks for.
const ConfigName = "minsh.yaml"

type Config struct {
	// Prompt is shown before each interactive read. \w expands to the
	// working directory.
	Prompt string `json:"prompt" validate:"required"`

	// Welcome and Goodbye are printed when an interactive session
	// starts and ends. Either may be empty.
	Welcome string `json:"welcome"`
	Goodbye string `json:"goodbye"`

	// WhichPath is the ordered list of directories the which builtin
	// searches. It is deliberately independent of $PATH.
	WhichPath []string `json:"which_path" validate:"required,min=1,unique"`
}

// Validate the configuration for basic semantic errors.
func (c *Config) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}

// Default returns the embedded default configuration. It panics on
// failure because that should never happen at runtime.
func Default() *Config {
	var out Config
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	if err := out.Validate(); err != nil {
		panic(err)
	}

	return &out
}
