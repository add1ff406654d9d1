package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mycok/uPath/matrixio"
	"github.com/mycok/uPath/shortestpath"
)

func newShowCmd(a *app) *cobra.Command {
	var withMatrix bool

	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Prints the distance table of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid run id %q: %w", args[0], err)
			}

			store, err := a.openStore(a.storeURI, a.logger)
			if err != nil {
				return err
			}
			defer closeStore(store, a.logger)

			run, err := store.FindRun(id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if withMatrix {
				fmt.Fprintln(out, "Matrix")
				for _, row := range run.Matrix {
					fmt.Fprintln(out, row)
				}
			}

			return matrixio.WriteTable(out, &shortestpath.Result{
				Source:    run.Source,
				Distances: run.Distances,
			})
		},
	}

	cmd.Flags().BoolVar(&withMatrix, "matrix", false, "Also print the adjacency matrix of the run")

	return cmd
}
