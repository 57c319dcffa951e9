package commands

import (
	"github.com/spf13/cobra"

	service "github.com/okian/kpastro/internal/app"
)

func newChartCommand(rt *cli) *cobra.Command {
	var m momentFlags
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Compute a full chart report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := m.request()
			if err != nil {
				return err
			}
			report, err := rt.svc.Chart(cmd.Context(), req)
			if err != nil {
				return err
			}
			return write(cmd.OutOrStdout(), rt.format, report)
		},
	}
	m.register(cmd)
	return cmd
}

func newHoraryCommand(rt *cli) *cobra.Command {
	var (
		m      momentFlags
		number int
	)
	cmd := &cobra.Command{
		Use:   "horary",
		Short: "Find when a horary number rises on the given day and print its chart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := m.request()
			if err != nil {
				return err
			}
			report, err := rt.svc.Horary(cmd.Context(), service.HoraryRequest{Number: number, ChartRequest: req})
			if err != nil {
				return err
			}
			return write(cmd.OutOrStdout(), rt.format, report)
		},
	}
	cmd.Flags().IntVar(&number, "number", 0, "horary number, 1..249")
	_ = cmd.MarkFlagRequired("number")
	m.register(cmd)
	return cmd
}

func newSweepCommand(rt *cli) *cobra.Command {
	var (
		m       momentFlags
		numbers []int
	)
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Locate many horary numbers on one day (all 249 by default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := m.request()
			if err != nil {
				return err
			}
			results, err := rt.svc.Sweep(cmd.Context(), service.HoraryRequest{ChartRequest: req}, numbers)
			if err != nil {
				return err
			}
			return write(cmd.OutOrStdout(), rt.format, results)
		},
	}
	cmd.Flags().IntSliceVar(&numbers, "numbers", nil, "horary numbers to locate, e.g. 1,34,249")
	m.register(cmd)
	return cmd
}
