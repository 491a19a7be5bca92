package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/hsiuhsiu/ecgamal-go/pkg/ecgamal"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the module and curve library versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "ecgamal", ecgamal.ModuleVersion())
			versions := ecgamal.BackendVersions()
			paths := make([]string, 0, len(versions))
			for p := range versions {
				paths = append(paths, p)
			}
			slices.Sort(paths)
			for _, p := range paths {
				fmt.Fprintf(out, "  %s %s\n", p, versions[p])
			}
			return nil
		},
	}
}
