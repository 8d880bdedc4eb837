// Package cmd implements the offer-tracker CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	apiclient "github.com/donaldgifford/offer-tracker/internal/api/client"
)

var (
	cfgFile       string
	envFile       string
	clientCfgFile string
)

var rootCmd = &cobra.Command{
	Use:   "offer-tracker",
	Short: "Watch a retailer catalog for a product going on offer",
	Long: "offer-tracker polls a retailer's product listing, checks whether the tracked\n" +
		"product has a promotional price in one of your sizes, and sends a single\n" +
		"Telegram message per offer period.",
	SilenceUsage: true,
}

// Root returns the root cobra command for documentation generation.
func Root() *cobra.Command {
	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initClientConfig)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "config.yaml", "service config file path")
	pf.StringVar(&envFile, "env-file", ".env", "dotenv file loaded before the config (skipped when missing)")
	pf.StringVar(&clientCfgFile, "client-config", "", "client config file (default $HOME/.offer-tracker.yaml)")
	pf.String("server", "http://localhost:8080", "API server URL for remote commands")
	pf.String("output", "table", "output format (table, json)")

	cobra.CheckErr(viper.BindPFlag("server", pf.Lookup("server")))
	cobra.CheckErr(viper.BindPFlag("output", pf.Lookup("output")))

	rootCmd.AddCommand(
		serveCmd(),
		checkCmd(),
		probeCmd(),
		testNotifyCmd(),
		stateCmd(),
		statusCmd(),
		triggerCmd(),
		migrateCmd(),
		versionCommand(),
	)
}

// initClientConfig wires the remote-command settings: flags, then OT_*
// environment variables, then the client config file.
func initClientConfig() {
	if clientCfgFile != "" {
		viper.SetConfigFile(clientCfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".offer-tracker")
	}

	viper.SetEnvPrefix("OT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using client config file:", viper.ConfigFileUsed())
	}
}

func newClient() *apiclient.Client {
	return apiclient.New(viper.GetString("server"), apiclient.WithUserAgent("offer-tracker-cli/"+Version))
}

func jsonOutput() bool {
	return viper.GetString("output") == "json"
}
