package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/sirupsen/logrus"

	"github.com/reoring/bounded"
	"github.com/reoring/bounded/schemadoc"
)

// envConfig holds flag defaults taken from the environment.
type envConfig struct {
	LogLevel string `env:"BOUNDED_LOG_LEVEL" envDefault:"warn"`
	Method   string `env:"BOUNDED_METHOD"    envDefault:"sobol"`
	Format   string `env:"BOUNDED_FORMAT"    envDefault:"json"`
	Workers  int    `env:"BOUNDED_WORKERS"   envDefault:"0"`
}

func loadEnv() (envConfig, error) {
	var cfg envConfig
	if err := env.Parse(&cfg); err != nil {
		return envConfig{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// schemaFlags are shared by every command that reads a schema document.
type schemaFlags struct {
	pointer   string
	name      string
	crdKind   string
	overrides string
	strict    bool
}

// load imports the document at path and builds the sampling options. The
// format follows the extension: .json is JSON, anything else YAML.
func (f *schemaFlags) load(path string) (*bounded.Schema, bounded.Opt, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, bounded.Opt{}, err
	}
	opts := schemadoc.Options{Pointer: f.pointer, Name: f.name}
	var (
		s    *bounded.Schema
		diag schemadoc.Diag
	)
	switch {
	case f.crdKind != "":
		s, diag, err = schemadoc.ImportYAMLForCRDKind(data, f.crdKind, opts)
	case strings.EqualFold(filepath.Ext(path), ".json"):
		s, diag, err = schemadoc.ImportJSON(data, opts)
	default:
		s, diag, err = schemadoc.ImportYAML(data, opts)
	}
	if err != nil {
		return nil, bounded.Opt{}, err
	}
	for _, w := range diag.Warnings() {
		logrus.Warnf("%s: %s", path, w)
	}
	logrus.Debugf("imported %s from %s (%d fields)", s.Name, path, len(s.Fields))

	opt := bounded.Opt{}
	if f.strict {
		opt.Constants = bounded.ConstantsReject
	}
	if f.overrides != "" {
		raw, err := os.ReadFile(f.overrides)
		if err != nil {
			return nil, bounded.Opt{}, err
		}
		if opt.Overrides, err = schemadoc.LoadOverrides(raw); err != nil {
			return nil, bounded.Opt{}, err
		}
		logrus.Debugf("loaded %d overrides from %s", len(opt.Overrides), f.overrides)
	}
	return s, opt, nil
}
