package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/upb/moltbot-gateway/services/containerenv"
)

func newKeysCmd() *cobra.Command {
	var long bool

	cmd := &cobra.Command{
		Use:   "keys",
		Short: "List the environment variables the container understands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if !long {
				for _, k := range containerenv.KnownKeys() {
					fmt.Fprintln(out, k)
				}
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "KEY\tSECRET")
			for _, k := range containerenv.KnownKeys() {
				fmt.Fprintf(tw, "%s\t%t\n", k, containerenv.IsSecret(k))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVarP(&long, "long", "l", false, "also show which keys hold secrets")
	return cmd
}
