package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all the mods in the registry",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		reg, err := loadRegistry()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Names are sorted already
		for _, name := range reg.Names() {
			mod := reg.Mods[name]
			switch {
			case viper.GetBool("list.directory"):
				fmt.Printf("%s -> %s\n", name, mod.Directory)
			case viper.GetBool("list.version") && len(mod.Version) > 0:
				fmt.Printf("%s (%s)\n", name, mod.Version)
			default:
				fmt.Println(name)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().BoolP("version", "v", false, "Print name and version")
	_ = viper.BindPFlag("list.version", listCmd.Flags().Lookup("version"))
	listCmd.Flags().BoolP("directory", "d", false, "Print name and directory")
	_ = viper.BindPFlag("list.directory", listCmd.Flags().Lookup("directory"))
}
