// Package cmd implements the debatemebro command line.
package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Iron-Ham/debatemebro/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "debatemebro",
	Short: "Staged AI debates in your terminal",
	Long: `DebateMeBro stages a scripted debate between two sides: research,
opening statements, rebuttals, closing arguments and a judges' scorecard,
revealed progressively like a live exchange.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/debatemebro/config.yaml)")
	rootCmd.PersistentFlags().String("plan", "", "debate plan file (yaml or json); overrides content.plan_file")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("content.plan_file", rootCmd.PersistentFlags().Lookup("plan"))
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("DEBATEMEBRO")
	// e.g., DEBATEMEBRO_TUI_THEME for tui.theme
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}
