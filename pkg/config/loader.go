package config

import (
	_ "embed"
	stderrors "errors"
	"os"
	"strings"

	"github.com/arthur-debert/agentsmd/pkg/errors"
	"github.com/arthur-debert/agentsmd/pkg/logging"
	"github.com/arthur-debert/agentsmd/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix marks the environment variables read as configuration.
const EnvPrefix = "AGENTS_"

//go:embed embedded/defaults.toml
var defaultConfig []byte

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

// Load reads the configuration from the embedded defaults, the user config
// file and the environment.
func Load() (*Config, error) {
	return LoadFrom(paths.UserConfigFile())
}

// LoadFrom is Load with an explicit user config file. A missing file is not
// an error.
func LoadFrom(userFile string) (*Config, error) {
	return LoadWithOverrides(userFile, nil)
}

// LoadWithOverrides is LoadFrom with a final layer of values, keyed like the
// TOML file (e.g. "output", "root.markers"), that wins over everything else.
// The command line passes its flags this way.
func LoadWithOverrides(userFile string, overrides map[string]interface{}) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	// 2. User config file, if it exists
	if userFile != "" {
		if _, err := os.Stat(userFile); err == nil {
			if err := k.Load(file.Provider(userFile), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", userFile).
					WithDetail("path", userFile)
			}
			logger.Debug().Str("path", userFile).Msg("Loaded user config")
		}
	}

	// 3. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 4. Command-line overrides
	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to unmarshal configuration")
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	logger.Trace().Interface("config", cfg).Msg("Configuration loaded")
	return &cfg, nil
}

// envKey maps AGENTS_LOCAL_TEMPLATE to local_template, AGENTS_ROOT_MARKERS to
// root.markers and AGENTS_LANGUAGES_<NAME>_EXTENSIONS to
// languages.<name>.extensions.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))

	if rest, ok := strings.CutPrefix(key, "root_"); ok {
		return "root." + rest
	}
	if rest, ok := strings.CutPrefix(key, "languages_"); ok {
		name, found := strings.CutSuffix(rest, "_extensions")
		if !found || name == "" {
			return ""
		}
		return "languages." + name + ".extensions"
	}
	return key
}

func validate(cfg *Config) error {
	required := []struct {
		key   string
		value string
	}{
		{"local_template", cfg.LocalTemplate},
		{"output", cfg.Output},
		{"claude_output", cfg.ClaudeOutput},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return errors.Newf(errors.ErrConfigLoad, "%s must not be empty", r.key).
				WithDetail("key", r.key)
		}
	}
	return nil
}
