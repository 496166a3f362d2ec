package cmd

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/malvarino/mathcli/internal/config"
	"github.com/malvarino/mathcli/internal/observability"
	"github.com/malvarino/mathcli/internal/reducer"
)

// newReduceCmd builds one arithmetic subcommand. All four share the same
// input handling; only the operator differs.
func newReduceCmd(op reducer.Operation, short string) *cobra.Command {
	reduceCmd := &cobra.Command{
		Use:   op.String(),
		Short: short,
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			// Bind flags to their viper keys so command-line values override
			// the config file and environment with the right precedence.
			if err := viper.BindPFlag("reduce.ignore", cmd.Flags().Lookup("ignore")); err != nil {
				return err
			}
			if err := viper.BindPFlag("reduce.silent", cmd.Flags().Lookup("silent")); err != nil {
				return err
			}
			return viper.BindPFlag("reduce.identity_seed", cmd.Flags().Lookup("identity-starting-point"))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := observability.GetLogger()

			var cfg config.Config
			if err := viper.Unmarshal(&cfg); err != nil {
				return fmt.Errorf("failed to unmarshal config with flag overrides: %w", err)
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			runID := uuid.New().String()
			logger.Info("Starting reduction",
				zap.String("runID", runID),
				zap.String("operation", op.String()),
				zap.Int("ignore", cfg.Reduce.Ignore),
				zap.Bool("silent", cfg.Reduce.Silent),
				zap.Bool("identity_seed", cfg.Reduce.IdentitySeed),
			)

			rc := reducer.NewConfig(op, cfg.Reduce.Ignore, cfg.Reduce.Silent, cfg.Reduce.IdentitySeed)
			result, err := rc.Reduce(cmd.InOrStdin(), logger)
			if err != nil {
				// Execute logs it; nothing reaches stdout on failure.
				return err
			}

			logger.Info("Writing result", zap.String("runID", runID))
			fmt.Fprintln(cmd.OutOrStdout(), result)
			return nil
		},
	}

	reduceCmd.Flags().IntP("ignore", "i", 0,
		"Ignore lines at the beginning of input, substituting the operation's identity.")
	reduceCmd.Flags().BoolP("silent", "s", false,
		"Silence errors parsing input, substituting the operation's identity for failing lines.")
	reduceCmd.Flags().Bool("identity-starting-point", false,
		"Use the identity for this operation as the fold's starting point.")

	return reduceCmd
}
