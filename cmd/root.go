package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/minepkg/mcfetch/cmd/config"
	"github.com/minepkg/mcfetch/internals/commands"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// set by main
var (
	Version = "dev"
	Commit  = ""
)

var (
	cfgFile       string
	globalDir     = "/tmp"
	disableColors bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mcfetch",
	Short: "Downloads and verifies minecraft versions",
	Long:  "Downloads everything a minecraft version needs to run and keeps it verified",
	Example: `
  mcfetch install 1.19.4
  mcfetch install "~1.18"
  mcfetch install --manifest fabric-loader-0.14.19-1.19.4.json
  mcfetch versions --constraint ">=1.19.0"`,
	SilenceUsage: true,
}

var completionCmd = &cobra.Command{
	Use:   "completion",
	Args:  cobra.MaximumNArgs(1),
	Short: "Output shell completion code for bash",
	Long: `To load completion run

. <(mcfetch completion)

You can add that line to your ~/.bashrc or ~/.profile to
persist completion in your shell.
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return rootCmd.GenBashCompletion(cmd.OutOrStdout())
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.Version = Version
	if Commit != "" {
		rootCmd.Version += " (" + Commit + ")"
	}
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, commands.Render(err))
		os.Exit(1)
	}
}

func init() {
	home, err := os.UserHomeDir()
	if err != nil {
		panic(err)
	}
	globalDir = filepath.Join(home, ".mcfetch")
	setDefaults(viper.GetViper(), globalDir)

	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&disableColors, "no-color", "", false, "disable color output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.mcfetch/config.toml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn or error)")
	viper.BindPFlag("logLevel", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(config.SubCmd)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if disableColors {
		viper.Set("noColor", true)
		commands.SetEmoji(false)
	}

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(globalDir)
		viper.SetConfigName("config")
		viper.SetConfigType("toml")
	}
	config.File = viper.ConfigFileUsed
	config.DefaultFile = filepath.Join(globalDir, "config.toml")

	// MCFETCH_META_DIR overwrites metaDir and so on
	viper.SetEnvPrefix("mcfetch")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range envKeys {
		viper.BindEnv(key, "MCFETCH_"+envName(key))
	}
	viper.AutomaticEnv()

	// a missing config file is fine
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintln(os.Stderr, "Could not read config file:", err)
		}
	}
}
