package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/fsmodding/moddir/core"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "moddir",
	Short: "A command line tool for resolving $moddir<Name>$/ references between game mods",
}

// Execute starts the root command for moddir
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// Add adds a new command as a subcommand to moddir
func Add(newCommand *cobra.Command) {
	rootCmd.AddCommand(newCommand)
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("registry-file", core.RegistryFileName, "The mod registry file to use")
	_ = viper.BindPFlag("registry-file", rootCmd.PersistentFlags().Lookup("registry-file"))

	rootCmd.PersistentFlags().String("mods-folder", "mods", "The game's mods folder, used when scanning")
	_ = viper.BindPFlag("mods-folder", rootCmd.PersistentFlags().Lookup("mods-folder"))

	rootCmd.PersistentFlags().Bool("non-interactive", false, "Don't prompt, assume yes")
	_ = viper.BindPFlag("non-interactive", rootCmd.PersistentFlags().Lookup("non-interactive"))

	viper.SetDefault("poll.interval", time.Second)
	viper.SetDefault("poll.timeout", time.Duration(0))

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.moddir.toml)")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".moddir" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".moddir")
	}

	viper.SetEnvPrefix("moddir")
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}

// loadRegistry loads the configured registry file, falling back to the one in the user's data folder
// when the default file doesn't exist in the working directory.
func loadRegistry() (core.Registry, error) {
	file := viper.GetString("registry-file")
	reg, err := core.LoadRegistry(file)
	if err == nil || !errors.Is(err, os.ErrNotExist) || viper.IsSet("registry-file") {
		return reg, err
	}
	fallback, ferr := core.GetDefaultRegistryFile()
	if ferr != nil {
		return reg, err
	}
	reg, ferr = core.LoadRegistry(fallback)
	if ferr != nil {
		return reg, fmt.Errorf("%w (run 'moddir scan' to create a registry)", err)
	}
	return reg, nil
}
