package main

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hsiuhsiu/ecgamal-go/pkg/ecgamal/bsgs"
	"github.com/hsiuhsiu/ecgamal-go/pkg/ecgamal/codec"
	"github.com/hsiuhsiu/ecgamal-go/pkg/ecgamal/crt"
	"github.com/hsiuhsiu/ecgamal-go/pkg/ecgamal/elgamal"
)

func newEncryptCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encrypt <plaintext>",
		Short: "Encrypt an unsigned integer and print the ciphertext as hex",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("plaintext: %w", err)
			}
			lib, err := a.open(cmd)
			if err != nil {
				return err
			}
			defer lib.Close()

			key, err := a.key(lib)
			if err != nil {
				return err
			}
			defer key.Clear()
			params, err := a.params()
			if err != nil {
				return err
			}

			var out []byte
			if params == nil {
				ct, err := elgamal.Encrypt(lib, key.Public(), m)
				if err != nil {
					return err
				}
				out, err = codec.MarshalCiphertext(ct, a.cfg.Compressed)
				if err != nil {
					return err
				}
			} else {
				ck, err := crt.NewKeyPair(key, params)
				if err != nil {
					return err
				}
				ct, err := crt.Encrypt(lib, ck, m)
				if err != nil {
					return err
				}
				out, err = codec.MarshalCRTCiphertext(ct, a.cfg.Compressed)
				if err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(out))
			return nil
		},
	}
	cmd.Flags().String("key", "", "hex key from keygen")
	return cmd
}

func newDecryptCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decrypt <ciphertext-hex>",
		Short: "Decrypt a ciphertext and print the integer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := hex.DecodeString(strings.TrimSpace(args[0]))
			if err != nil {
				return fmt.Errorf("ciphertext: %w", err)
			}
			lib, err := a.open(cmd)
			if err != nil {
				return err
			}
			defer lib.Close()

			key, err := a.key(lib)
			if err != nil {
				return err
			}
			defer key.Clear()
			params, err := a.params()
			if err != nil {
				return err
			}

			var m uint64
			if params == nil {
				ct, err := codec.DecodeCiphertext(lib, raw)
				if err != nil {
					return err
				}
				table, err := bsgs.FromTableBits(cmd.Context(), lib, a.cfg.TableBits)
				if err != nil {
					return err
				}
				defer table.Free()
				if m, err = elgamal.Decrypt(lib, key, ct, table); err != nil {
					return err
				}
			} else {
				ct, err := codec.DecodeCRTCiphertext(lib, raw)
				if err != nil {
					return err
				}
				table, err := bsgs.New(cmd.Context(), lib, params.MaxModulus())
				if err != nil {
					return err
				}
				defer table.Free()
				ck, err := crt.NewKeyPair(key, params)
				if err != nil {
					return err
				}
				if m, err = crt.Decrypt(lib, ck, ct, table); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), m)
			return nil
		},
	}
	cmd.Flags().String("key", "", "hex private key from keygen")
	return cmd
}
