package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dennxbot/IMS-CICS-sub001/module/attendance/domain"
	"github.com/dennxbot/IMS-CICS-sub001/module/attendance/service"
)

func newDistanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "distance <lat1> <lon1> <lat2> <lon2>",
		Short: "great-circle distance in meters between two points",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			var v [4]float64
			for i, a := range args {
				f, err := strconv.ParseFloat(a, 64)
				if err != nil {
					return fmt.Errorf("argument %d: %w", i+1, err)
				}
				v[i] = f
			}

			a := domain.Coordinate{Lat: v[0], Lon: v[1]}
			b := domain.Coordinate{Lat: v[2], Lon: v[3]}
			for _, c := range []domain.Coordinate{a, b} {
				if err := c.Validate(); err != nil {
					return err
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%.1f\n", service.Distance(a, b))
			return nil
		},
	}
}
