package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"xpdesk/app"
	"xpdesk/chart"
	"xpdesk/config"
	"xpdesk/log"
	"xpdesk/store"
	"xpdesk/wm"
)

var (
	version    = "0.3.1"
	walletFlag string
	apiFlag    string

	rootCmd = &cobra.Command{
		Use:   "xpdesk",
		Short: "XP Pool - a desktop-style terminal dashboard for your mining pool wallet.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return fmt.Errorf("xpdesk must run in a terminal")
			}

			ctx := context.Background()
			log.Initialize()
			defer log.Close()

			// Adaptive colors need to know the terminal background before
			// the first frame renders.
			lipgloss.SetHasDarkBackground(termenv.HasDarkBackground())

			cfg := config.LoadConfig()

			// Flags override config
			if walletFlag != "" {
				cfg.WalletAddress = walletFlag
			}
			if apiFlag != "" {
				cfg.APIBaseURL = apiFlag
			}
			if cfg.WalletAddress == "" {
				return fmt.Errorf("no wallet address configured; pass --wallet or set wallet_address in the config file")
			}

			sessionPath, err := config.SessionFilePath()
			if err != nil {
				return fmt.Errorf("failed to resolve session path: %w", err)
			}

			return app.Run(ctx, cfg, store.Open(sessionPath))
		},
	}

	resetCmd = &cobra.Command{
		Use:   "reset",
		Short: "Forget the saved window layout and chart history",
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Initialize()
			defer log.Close()

			cfg := config.LoadConfig()
			sessionPath, err := config.SessionFilePath()
			if err != nil {
				return fmt.Errorf("failed to resolve session path: %w", err)
			}
			st := store.Open(sessionPath)

			if err := wm.ResetKeys(st); err != nil {
				return fmt.Errorf("failed to reset window state: %w", err)
			}
			fmt.Println("Window layout has been reset")

			if cfg.WalletAddress != "" {
				if err := chart.ResetKeys(st, cfg.WalletAddress); err != nil {
					return fmt.Errorf("failed to reset chart history: %w", err)
				}
				fmt.Println("Chart history has been reset")
			}

			return nil
		},
	}

	debugCmd = &cobra.Command{
		Use:   "debug",
		Short: "Print debug information like config paths",
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Initialize()
			defer log.Close()

			cfg := config.LoadConfig()

			configDir, err := config.GetConfigDir()
			if err != nil {
				return fmt.Errorf("failed to get config directory: %w", err)
			}
			configJson, _ := json.MarshalIndent(cfg, "", "  ")

			fmt.Printf("Config: %s\n%s\n", filepath.Join(configDir, config.ConfigFileName), configJson)

			return nil
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of xpdesk",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("xpdesk version %s\n", version)
		},
	}
)

func init() {
	rootCmd.Flags().StringVarP(&walletFlag, "wallet", "w", "",
		"Pool wallet address to watch (overrides the config file)")
	rootCmd.Flags().StringVarP(&apiFlag, "api", "a", "",
		"Base URL of the pool API (overrides the config file)")

	rootCmd.AddCommand(debugCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(resetCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
	}
}
