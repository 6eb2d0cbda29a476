package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Aarsh-Shekhar/internship-watcher/internal/secrets"
	"github.com/Aarsh-Shekhar/internship-watcher/internal/watch"
)

var (
	flagDataDir string
	flagSeed    bool
)

var rootCmd = &cobra.Command{
	Use:   "watcher",
	Short: "Watch internship listing documents and notify on new postings",
	Long: `Scans crowd-sourced internship listing READMEs, remembers every
posting it has seen, and notifies you about the genuinely new ones.

Examples:
  watcher            run one scan
  watcher --seed     mark everything currently listed as seen, silently
  watcher serve      run the daemon with periodic scans and the local API`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(flagDataDir)
		if err != nil {
			return err
		}
		defer a.close()

		_, kept, err := a.runner.Scan(cmd.Context(), watch.Options{
			Seed:           flagSeed,
			NotifyWhenZero: a.cfg.Notify.NotifyWhenZero && !flagSeed,
		})
		if err != nil {
			return err
		}
		if !flagSeed {
			fmt.Printf("kept %d new postings\n", kept)
		}
		return nil
	},
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage the gist token in the OS keychain",
}

var tokenSetCmd = &cobra.Command{
	Use:   "set <token>",
	Short: "Store the gist token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return secrets.SetGistToken(args[0])
	},
}

var tokenClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the gist token",
	RunE: func(cmd *cobra.Command, args []string) error {
		return secrets.DeleteGistToken()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default $WATCHER_DATA_DIR or ~/.internship-watcher)")
	rootCmd.Flags().BoolVar(&flagSeed, "seed", false, "record current listings as seen without notifying")

	tokenCmd.AddCommand(tokenSetCmd, tokenClearCmd)
	rootCmd.AddCommand(serveCmd, tokenCmd)
}
