package cli

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"energy_forecast/internal/config"
	"energy_forecast/internal/forecast"
	"energy_forecast/internal/logging"
)

// options holds the persistent flags and the configuration they resolve to.
type options struct {
	cfgFile    string
	serviceURL string
	logLevel   string

	cfg *config.Config
}

// Execute runs the root command with os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "forecast",
		Short:         "Energy forecast dashboard",
		Long:          `Uploads generation datasets to the prediction service and explores the forecasts it returns, from a browser dashboard ('serve') or the command line.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.resolve(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default is ./forecast.yaml)")
	rootCmd.PersistentFlags().StringVar(&opts.serviceURL, "service-url", "", "prediction service base URL")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		newServeCmd(opts),
		newUploadCmd(opts),
		newPredictCmd(opts),
		newNextDayCmd(opts),
		newModelsCmd(opts),
	)
	return rootCmd
}

// resolve applies defaults, the config file, the environment and finally the
// flags, then configures logging.
func (o *options) resolve(cmd *cobra.Command) error {
	cfg, err := config.Load(o.cfgFile)
	if err != nil {
		return err
	}
	if err := config.LoadEnv(cfg); err != nil {
		return err
	}
	if cmd.Flags().Changed("service-url") {
		cfg.ServiceURL = o.serviceURL
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logging.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Debug().Str("service_url", cfg.ServiceURL).Msg("configuration loaded")
	o.cfg = cfg
	return nil
}

func (o *options) client() (*forecast.Client, error) {
	return forecast.NewClient(o.cfg.ServiceURL)
}

// callContext bounds one prediction service call by the configured timeout.
func (o *options) callContext(parent context.Context) (context.Context, context.CancelFunc) {
	if o.cfg.RequestTimeout > 0 {
		return context.WithTimeout(parent, o.cfg.RequestTimeout)
	}
	return context.WithCancel(parent)
}
