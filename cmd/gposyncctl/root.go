package main

import (
	"os"
	"strings"
	"sync"

	"gposync/internal/config"
	"gposync/internal/db"
	"gposync/internal/logging"
	"gposync/internal/services"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type commandContext struct {
	configFlag *string

	once     sync.Once
	services *services.Services
	err      error
}

// ensureServices loads the configuration and opens the database once per run.
func (c *commandContext) ensureServices() (*services.Services, error) {
	c.once.Do(func() {
		_ = godotenv.Load()
		if path := strings.TrimSpace(*c.configFlag); path != "" {
			os.Setenv(config.ConfigPathEnvVar, path)
		}

		cfg, err := config.Load()
		if err != nil {
			c.err = err
			return
		}
		logging.Init(logging.Config{Level: "warn", Format: "console"})

		gdb, err := db.Open(cfg.Database)
		if err != nil {
			c.err = err
			return
		}
		if err := db.Migrate(gdb); err != nil {
			c.err = err
			return
		}
		c.services = services.New(gdb)
	})
	return c.services, c.err
}

func newRootCommand() *cobra.Command {
	var configFlag string
	ctx := &commandContext{configFlag: &configFlag}

	rootCmd := &cobra.Command{
		Use:           "gposyncctl",
		Short:         "Manage gposync users and logins",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(newUserCommand(ctx))
	rootCmd.AddCommand(newLoginCommand(ctx))

	return rootCmd
}
