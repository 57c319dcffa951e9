package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/okian/kpastro/internal/domain/types"
)

func newDivisionsCommand(rt *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "divisions [number]",
		Short: "Print the horary division table, or one row of it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return write(cmd.OutOrStdout(), rt.format, rt.svc.Divisions())
			}
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("horary number %q: %w", args[0], types.ErrInvalidInput)
			}
			d, err := rt.svc.Division(n)
			if err != nil {
				return err
			}
			return write(cmd.OutOrStdout(), rt.format, d)
		},
	}
}
