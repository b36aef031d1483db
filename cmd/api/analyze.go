package main

import (
	"encoding/json"
	"errors"
	"strings"

	"vet-clinic-ops/internal/config"
	"vet-clinic-ops/internal/domain/appointments"
	"vet-clinic-ops/internal/platform/logger"

	"github.com/spf13/cobra"
)

func newAnalyzeCmd(configPath *string) *cobra.Command {
	var (
		notes       string
		serviceType string
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analiza notas de consulta y muestra el resultado en JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(notes) == "" {
				return errors.New("--notes is required")
			}
			st := appointments.ServiceType(serviceType)
			if !st.Valid() {
				return errors.New("--service-type must be Welcome, Routine or Post-Vet")
			}

			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			log, err := newLogger(cfg.Logging)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync(log) }()

			analyzer, err := newAnalyzer(cfg.Analysis, log, nil)
			if err != nil {
				return err
			}

			res := analyzer.Analyze(cmd.Context(), notes, string(st))

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		},
	}
	cmd.Flags().StringVar(&notes, "notes", "", "notas de la consulta")
	cmd.Flags().StringVar(&serviceType, "service-type", string(appointments.ServiceRoutine), "Welcome | Routine | Post-Vet")
	return cmd
}
