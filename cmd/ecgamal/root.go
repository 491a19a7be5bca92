package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hsiuhsiu/ecgamal-go/pkg/ecgamal"
	"github.com/hsiuhsiu/ecgamal-go/pkg/ecgamal/crt"
	"github.com/hsiuhsiu/ecgamal-go/pkg/ecgamal/curve"
)

const envPrefix = "ECGAMAL"

// settings is the merged view of flags, ECGAMAL_* variables and the optional
// config file, in that order of precedence.
type settings struct {
	Curve      string `mapstructure:"curve"`
	Workers    int    `mapstructure:"workers"`
	TableBits  uint   `mapstructure:"table-bits"`
	Profile    string `mapstructure:"profile"`
	Compressed bool   `mapstructure:"compressed"`
	LogLevel   string `mapstructure:"log-level"`
	Key        string `mapstructure:"key"`
}

type app struct {
	v   *viper.Viper
	cfg settings
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:           "ecgamal",
		Short:         "Exact EC-ElGamal encryption of 32 and 64-bit integers",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "config file (yaml, toml or json)")
	pf.String("curve", curve.Default.String(), "curve name")
	pf.Int("workers", 0, "worker pool size, 0 for GOMAXPROCS")
	pf.Uint("table-bits", 16, "plain mode: 2^bits baby steps and giant steps")
	pf.String("profile", "", "CRT profile: 32 or 64; empty for plain ElGamal")
	pf.Bool("compressed", true, "write points in compressed form")
	pf.String("log-level", "warn", "debug, info, warn or error")

	root.AddCommand(
		newKeygenCmd(a),
		newEncryptCmd(a),
		newDecryptCmd(a),
		newVersionCmd(),
	)
	return root
}

func (a *app) load(cmd *cobra.Command) error {
	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()
	if err := a.v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	if file := a.v.GetString("config"); file != "" {
		a.v.SetConfigFile(file)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return a.v.Unmarshal(&a.cfg)
}

func (a *app) open(cmd *cobra.Command) (*ecgamal.Library, error) {
	c, err := curve.ParseCurve(a.cfg.Curve)
	if err != nil {
		return nil, err
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(a.cfg.LogLevel)); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	return ecgamal.Open(ecgamal.Config{
		Curve:   c,
		Workers: a.cfg.Workers,
		Logger:  logger,
	})
}

// params returns nil in plain mode.
func (a *app) params() (*crt.Params, error) {
	if a.cfg.Profile == "" {
		return nil, nil
	}
	p, err := crt.ParseProfile(a.cfg.Profile)
	if err != nil {
		return nil, err
	}
	return crt.DefaultParams(p)
}
