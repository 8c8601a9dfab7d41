// registrygen scans a package for annotated constructors and interfaces and
// generates the wirebox type-registration table for it.
//
// A constructor is annotated with a `wirebox:type` line in its doc comment,
// optionally followed by `params=name1,name2` to name its parameters. An
// interface is annotated with `wirebox:interface` on its type declaration.
//
// Settings come from the environment: REGISTRYGEN_PACKAGE (default "."),
// REGISTRYGEN_OUTPUT (default "wirebox_registry_gen.go") and
// REGISTRYGEN_DRY_RUN.
package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"golang.org/x/tools/go/packages"
)

type settings struct {
	Package string `mapstructure:"package"`
	Output  string `mapstructure:"output"`
	DryRun  bool   `mapstructure:"dry_run"`
}

func loadSettings() (settings, error) {
	v := viper.New()
	v.SetEnvPrefix("REGISTRYGEN")
	v.AutomaticEnv()
	v.SetDefault("package", ".")
	v.SetDefault("output", "wirebox_registry_gen.go")
	v.SetDefault("dry_run", false)

	var s settings
	err := v.Unmarshal(&s)
	return s, err
}

func main() {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.DateTime}).
		With().
		Timestamp().
		Logger()

	s, err := loadSettings()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load settings")
	}

	startScan := time.Now()

	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedSyntax,
	}
	pkgs, err := packages.Load(cfg, s.Package)
	if err != nil {
		logger.Fatal().Err(err).Str("package", s.Package).Msg("Failed to load package")
	}

	var scanned scanResult
	for _, pkg := range pkgs {
		pkgLogger := logger.With().Str("package", pkg.PkgPath).Logger()
		pkgLogger.Debug().Msg("Scanning package")
		scanned.merge(scanPackage(&pkgLogger, pkg))
	}

	logger.Info().
		Int("constructors", len(scanned.constructors)).
		Int("interfaces", len(scanned.interfaces)).
		Dur("took", time.Since(startScan)).
		Msg("Scanning completed")

	if scanned.packageName == "" {
		logger.Fatal().Msg("No annotated declarations found, nothing to generate")
	}

	outputPath := s.Output
	if s.DryRun {
		outputPath = os.DevNull
	}

	if err := generate(outputPath, scanned); err != nil {
		logger.Fatal().Err(err).Str("output", outputPath).Msg("Failed to generate registration table")
	}
	logger.Info().Str("output", outputPath).Msg("Registration table generated")
}
