package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"zmimport/internal/config"
	"zmimport/internal/logger"
)

var (
	cfgFile  string
	profile  string
	logLevel string
	cfg      *config.Config
	log      = logger.Discard()
)

var rootCmd = &cobra.Command{
	Use:          "zmimport",
	Short:        "Import z/OS datasets over FTP",
	Long:         `zmimport copies mainframe datasets into local files over FTP.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		entry, err := logger.New(cmd.ErrOrStderr(), logLevel)
		if err != nil {
			return err
		}
		log = entry
		return nil
	},
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.zmconfig)")
	rootCmd.PersistentFlags().StringVarP(&profile, "profile", "p", "", "profile to use (overrides default)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", logrus.InfoLevel.String(), "log level (debug, info, warn, error)")
}

// GetConfig loads the config file on first use.
func GetConfig() (*config.Config, error) {
	if cfg != nil {
		return cfg, nil
	}

	loaded, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if profile != "" {
		loaded.DefaultProfile = profile
	}
	cfg = loaded
	return cfg, nil
}

func GetCurrentProfile() (*config.Profile, error) {
	c, err := GetConfig()
	if err != nil {
		return nil, err
	}
	return c.GetProfile(c.DefaultProfile)
}
