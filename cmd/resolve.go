package cmd

import (
	"fmt"
	"os"

	"github.com/fsmodding/moddir/cmdshared"
	"github.com/fsmodding/moddir/core"
	"github.com/skratchdot/open-golang/open"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// resolveCmd represents the resolve command
var resolveCmd = &cobra.Command{
	Use:   "resolve [token]",
	Short: "Resolve a $moddir<Name>$/ reference to a path",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		reg, err := loadRegistry()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		r := core.NewResolver(reg)

		var resolved string
		if viper.GetBool("resolve.strict") {
			resolved, err = r.ResolveStrict(args[0])
		} else {
			resolved, err = r.ResolveLoose(args[0])
		}
		if err != nil {
			cmdshared.PrintResolveError(args[0], err)
			os.Exit(1)
		}
		fmt.Println(resolved)

		if viper.GetBool("resolve.open") {
			err = open.Start(resolved)
			if err != nil {
				fmt.Printf("Failed to open %s: %v\n", resolved, err)
				os.Exit(1)
			}
		}
	},
}

// normalizeCmd represents the normalize command
var normalizeCmd = &cobra.Command{
	Use:   "normalize [path]",
	Short: "Normalize slashes in a game path",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if viper.GetBool("normalize.sanitize") {
			fmt.Println(core.Sanitize(args[0]))
		} else {
			fmt.Println(core.Normalize(args[0]))
		}
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(normalizeCmd)

	resolveCmd.Flags().Bool("strict", false, "Require the leading $ of the token")
	_ = viper.BindPFlag("resolve.strict", resolveCmd.Flags().Lookup("strict"))
	resolveCmd.Flags().Bool("open", false, "Open the resolved file with the default application")
	_ = viper.BindPFlag("resolve.open", resolveCmd.Flags().Lookup("open"))

	normalizeCmd.Flags().BoolP("sanitize", "s", false, "Also strip stray $ characters from malformed paths")
	_ = viper.BindPFlag("normalize.sanitize", normalizeCmd.Flags().Lookup("sanitize"))
}
