// Package config loads typed configuration structs from the environment and
// adapts them into container definitions.
package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/wirebox/wirebox"
	"github.com/wirebox/wirebox/option"
)

type (
	Options struct {
		prefix   string
		envFiles []string
	}
)

// WithEnvPrefix prepends a prefix to every bound environment variable.
func WithEnvPrefix(prefix string) option.Option[Options] {
	return func(opts *Options) {
		opts.prefix = prefix
	}
}

// WithEnvFiles loads the given dotenv files before binding. Missing files
// are ignored, a .env may legitimately not exist in production.
func WithEnvFiles(files ...string) option.Option[Options] {
	return func(opts *Options) {
		opts.envFiles = files
	}
}

// Load populates a T from environment variables, binding every leaf field
// through its mapstructure tag (or field name). Nested structs map to
// underscore-separated variables: Server.Port with prefix APP binds to
// APP_SERVER_PORT.
func Load[T any](opts ...option.Option[Options]) (*T, error) {
	options := option.Build(&Options{envFiles: []string{".env"}}, opts...)

	// non-fatal on purpose
	_ = godotenv.Load(options.envFiles...)

	v := viper.New()
	v.SetEnvPrefix(options.prefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var vT T
	bindEnvs(v, options.prefix, reflect.TypeOf(vT))

	if err := v.Unmarshal(&vT); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config: %w", err)
	}

	return &vT, nil
}

// Definition adapts Load into a container factory, so a config struct
// resolves like any other identifier and is loaded at most once.
func Definition[T any](id string, opts ...option.Option[Options]) wirebox.Def {
	return wirebox.Define(id, func() (any, error) {
		cfg, err := Load[T](opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to load config for %q:\n\t%w", id, err)
		}
		return cfg, nil
	})
}

func bindEnvs(v *viper.Viper, envPrefix string, t reflect.Type, parts ...string) {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return
	}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		name, ok := field.Tag.Lookup("mapstructure")
		if !ok {
			name = field.Name
		}

		fieldTyp := field.Type
		if fieldTyp.Kind() == reflect.Pointer {
			fieldTyp = fieldTyp.Elem()
		}
		if fieldTyp.Kind() == reflect.Struct {
			bindEnvs(v, envPrefix, fieldTyp, append(parts, name)...)
			continue
		}

		key := strings.Join(append(parts, name), ".")
		_ = v.BindEnv(key, envVarName(envPrefix, key))
	}
}

func envVarName(envPrefix, key string) string {
	name := strings.ReplaceAll(key, ".", "_")
	if envPrefix != "" {
		name = envPrefix + "_" + name
	}
	return strings.ToUpper(name)
}
