package main

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
	"go.uber.org/zap"

	"github.com/reoring/treebind"
	"github.com/reoring/treebind/i18n"
)

type MainConfig struct {
	V        bool   `cli:"name=v aliases=verbose desc='debug logging'"`
	Color    bool   `cli:"name=color desc='force colored output'"`
	MaxDepth int    `cli:"name=maxdepth desc='maximum nesting depth (negative disables)'"`
	Dup      bool   `cli:"name=dup desc='allow duplicate mapping keys (last wins)'"`
	Lang     string `cli:"name=lang desc='message language: en, ja'"`

	InFormat, OutFormat *Format

	ConfigPath string

	Out      string
	CloseOut func() error

	Main *cli.Command
}

// FileConfig is the optional YAML file given with -config. Flags given on
// the command line take precedence over it.
type FileConfig struct {
	Verbose            bool   `yaml:"verbose"`
	Color              *bool  `yaml:"color"`
	MaxDepth           int    `yaml:"maxDepth"`
	AllowDuplicateKeys bool   `yaml:"allowDuplicateKeys"`
	Lang               string `yaml:"lang"`
	InputFormat        string `yaml:"inputFormat"`
	OutputFormat       string `yaml:"outputFormat"`
}

func loadFileConfig(path string) (*FileConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config %q: %w", path, err)
	}
	fc := &FileConfig{}
	if err := yaml.Unmarshal(b, fc); err != nil {
		return nil, fmt.Errorf("could not decode config %q: %w", path, err)
	}
	return fc, nil
}

func (cfg *MainConfig) fmtFunc(fp **Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		*fp = &f
		return f, nil
	})
}

func (cfg *MainConfig) configOpt(_ *cli.Context, v string) (any, error) {
	cfg.ConfigPath = v
	return v, nil
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

// isSet reports whether the named option was given on the command line.
func (cfg *MainConfig) isSet(name string) bool {
	if cfg.Main == nil {
		return false
	}
	for _, opt := range cfg.Main.Opts {
		if opt.Name == name {
			return opt.Value != nil
		}
	}
	return false
}

// applyFile fills every option not given on the command line from fc.
func (cfg *MainConfig) applyFile(fc *FileConfig) error {
	if !cfg.isSet("v") {
		cfg.V = fc.Verbose
	}
	if !cfg.isSet("color") && fc.Color != nil {
		cfg.Color = *fc.Color
	}
	if !cfg.isSet("maxdepth") {
		cfg.MaxDepth = fc.MaxDepth
	}
	if !cfg.isSet("dup") {
		cfg.Dup = fc.AllowDuplicateKeys
	}
	if !cfg.isSet("lang") {
		cfg.Lang = fc.Lang
	}
	for _, p := range []struct {
		text string
		dst  **Format
	}{{fc.InputFormat, &cfg.InFormat}, {fc.OutputFormat, &cfg.OutFormat}} {
		if p.text == "" || *p.dst != nil {
			continue
		}
		f, err := ParseFormat(p.text)
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		*p.dst = &f
	}
	return nil
}

// setup finishes configuration once options are parsed: it loads the config
// file, then installs the logger and message language.
func (cfg *MainConfig) setup() error {
	if cfg.ConfigPath != "" {
		fc, err := loadFileConfig(cfg.ConfigPath)
		if err != nil {
			return err
		}
		if err := cfg.applyFile(fc); err != nil {
			return err
		}
	}
	logger, err := newLogger(cfg.V)
	if err != nil {
		return err
	}
	treebind.SetLogger(logger)
	if cfg.Lang != "" {
		i18n.SetLanguage(cfg.Lang)
	}
	logger.Debug("configured",
		zap.String("config", cfg.ConfigPath),
		zap.Int("maxDepth", cfg.MaxDepth),
		zap.Bool("allowDuplicateKeys", cfg.Dup))
	return nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	zc.Encoding = "console"
	return zc.Build()
}

// colorize reports whether output written to w should carry ANSI colors.
func (cfg *MainConfig) colorize(w any) bool {
	if cfg.Color {
		return true
	}
	if cfg.isSet("color") {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}
