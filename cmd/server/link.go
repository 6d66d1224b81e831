package main

import (
	"fmt"

	"quickreach/internal/config"
	"quickreach/internal/numbers"
	"quickreach/internal/whatsapp"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newLinkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "link <number> <text>",
		Short: "Print the WhatsApp link for a number and message",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !numbers.Valid(args[0]) {
				return errors.Errorf("%q is not a %d digit number", args[0], numbers.Length)
			}
			builder := whatsapp.NewBuilder(config.FromEnv())
			_, err := fmt.Fprintln(cmd.OutOrStdout(), builder.Build(args[0], args[1]))
			return err
		},
	}
}
