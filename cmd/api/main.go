package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// @title Vet Clinic Ops API
// @version 1.0
// @description Operación diaria de la clínica: cola de citas, análisis de consultas, timeline de auditoría y KPIs.
// @BasePath /
func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "vetclinic",
		Short:         "Vet clinic operations API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file (opcional; env VETCLINIC_* tiene prioridad)")

	root.AddCommand(newServeCmd(&configPath))
	root.AddCommand(newAnalyzeCmd(&configPath))
	return root
}
