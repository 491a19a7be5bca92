package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hsiuhsiu/ecgamal-go/pkg/ecgamal"
	"github.com/hsiuhsiu/ecgamal-go/pkg/ecgamal/codec"
	"github.com/hsiuhsiu/ecgamal-go/pkg/ecgamal/elgamal"
)

func newKeygenCmd(a *app) *cobra.Command {
	var publicOnly bool
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a key pair and print it as hex",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lib, err := a.open(cmd)
			if err != nil {
				return err
			}
			defer lib.Close()

			key, err := elgamal.GenerateKey(lib)
			if err != nil {
				return err
			}
			defer key.Clear()

			priv, err := codec.MarshalKey(key, a.mode(true))
			if err != nil {
				return err
			}
			defer ecgamal.ZeroizeBytes(priv)
			pub, err := codec.MarshalKey(key, a.mode(false))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !publicOnly {
				fmt.Fprintln(out, "private:", hex.EncodeToString(priv))
			}
			fmt.Fprintln(out, "public:", hex.EncodeToString(pub))
			return nil
		},
	}
	cmd.Flags().BoolVar(&publicOnly, "public-only", false, "print only the public key")
	return cmd
}

func (a *app) mode(private bool) codec.Mode {
	var m codec.Mode
	if a.cfg.Compressed {
		m |= codec.ModeCompressed
	}
	if private {
		m |= codec.ModePrivate
	}
	return m
}

func (a *app) key(lib *ecgamal.Library) (*elgamal.KeyPair, error) {
	if a.cfg.Key == "" {
		return nil, errors.New("no key: pass --key or set " + envPrefix + "_KEY")
	}
	raw, err := hex.DecodeString(strings.TrimSpace(a.cfg.Key))
	if err != nil {
		return nil, fmt.Errorf("key: %w", err)
	}
	defer ecgamal.ZeroizeBytes(raw)
	return codec.DecodeKey(lib, raw)
}
