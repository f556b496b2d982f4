package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// removeCmd represents the remove command
var removeCmd = &cobra.Command{
	Use:     "remove",
	Short:   "Remove a mod from the registry",
	Aliases: []string{"delete", "rm"},
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if len(args[0]) == 0 {
			fmt.Println("You must specify a mod.")
			os.Exit(1)
		}
		reg, err := loadRegistry()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		if !reg.RemoveMod(args[0]) {
			fmt.Println("This mod isn't in the registry.")
			os.Exit(1)
		}
		err = reg.Write()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		fmt.Printf("Mod %s removed from the registry!\n", args[0])
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
}
