package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/malvarino/mathcli/internal/config"
	"github.com/malvarino/mathcli/internal/observability"
	"github.com/malvarino/mathcli/internal/reducer"
)

var rootCmd = newRootCmd()

// newRootCmd builds the root command with its four arithmetic subcommands.
// Production uses the package-level instance; tests build pristine ones.
func newRootCmd() *cobra.Command {
	var (
		cfgFile   string
		verbosity int
	)

	root := &cobra.Command{
		Use:   "mathcli",
		Short: "Apply a mathematical operation to a stream of inputs.",
		Long: `Apply a mathematical operation to a stream of inputs read from stdin,
one value per line. A blank line ends the input.

  $ printf '2\n3\n\n' | mathcli mul
  6
  $ printf '6\n2\n\n' | mathcli sub
  4
  $ printf '7\n3\n\n' | mathcli div
  2.3333333333333335
  $ printf '5\n4\n\n' | mathcli add
  9`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Runs before any subcommand, setting up config and logging.
			if err := initializeConfig(cfgFile); err != nil {
				return err
			}

			var cfg config.Config
			if err := viper.Unmarshal(&cfg); err != nil {
				// Fall back to a minimal logger so the failure is reported.
				observability.InitializeLogger(config.LoggerConfig{
					Level: "error", Format: "console", ServiceName: "mathcli",
				})
				return fmt.Errorf("failed to unmarshal config: %w", err)
			}

			// Any -v flags beat the configured level; diagnostics stay on
			// stderr either way.
			if verbosity > 0 {
				cfg.Logger.Level = observability.VerbosityLevel(verbosity).String()
			}

			observability.InitializeLogger(cfg.Logger)
			observability.GetLogger().Info("Starting mathcli", zap.String("version", Version))
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./config.yaml)")
	root.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase diagnostic verbosity (repeatable; all logs go to stderr)")
	root.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	root.AddCommand(
		newReduceCmd(reducer.Add, "Add all inputs. Identity: 0."),
		newReduceCmd(reducer.Sub, "Subtract all inputs. Identity: 0."),
		newReduceCmd(reducer.Mul, "Multiply all inputs. Identity: 1."),
		newReduceCmd(reducer.Div, "Divide all inputs. Identity: 1."),
	)
	return root
}

// Execute runs the root command. Failures are reported on the diagnostic
// stream only; the result stream stays untouched.
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		if logger := observability.GetLogger(); logger.Core().Enabled(zap.ErrorLevel) {
			logger.Error("Command execution failed", zap.Error(err))
		} else {
			// Logger not initialized yet (e.g. flag parse errors).
			fmt.Fprintln(os.Stderr, err)
		}
	}
	observability.Sync()
	return err
}

// initializeConfig reads in the config file and MATHCLI_* env variables.
func initializeConfig(cfgFile string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	config.SetDefaults(viper.GetViper())

	viper.SetEnvPrefix("MATHCLI")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// No config file; defaults, env vars and flags carry the run.
	}
	return nil
}
