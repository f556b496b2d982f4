package cmd

import (
	"fmt"
	"os"

	"github.com/fsmodding/moddir/cmdshared"
	"github.com/fsmodding/moddir/core"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rewriteCmd represents the rewrite command
var rewriteCmd = &cobra.Command{
	Use:   "rewrite [vehicle.xml]",
	Short: "Expand $moddir<Name>$/ combination references in a vehicle file",
	Long: `Expand $moddir<Name>$/ references in the xmlFilename of every combination in a vehicle file, the same way
the game does when the vehicle is loaded. References to unknown mods are left as they are.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		reg, err := loadRegistry()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		x, err := core.LoadXMLFile(args[0])
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		var currentModDir string
		if modName := viper.GetString("rewrite.mod"); len(modName) > 0 {
			mod, ok := reg.FindMod(modName)
			if !ok {
				fmt.Printf("Mod %s is not in the registry\n", modName)
				os.Exit(1)
			}
			currentModDir = mod.Directory
		}

		res := core.RewriteVehicleCombinations(x, reg, currentModDir, core.NewLogger())
		for _, i := range res.Rewritten {
			value, _ := x.GetString(core.CombinationKey(i) + "#xmlFilename")
			fmt.Printf("combination(%d): %s\n", i, value)
		}
		if len(res.Unresolved) > 0 {
			fmt.Printf("%d combination(s) could not be resolved\n", len(res.Unresolved))
		}
		if len(res.Rewritten) == 0 {
			fmt.Println("Nothing to rewrite.")
			return
		}

		if viper.GetBool("rewrite.dry-run") {
			_, err = x.WriteTo(os.Stdout)
			if err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
			return
		}
		if !cmdshared.PromptYesNo(fmt.Sprintf("Overwrite %s? [Y/n] ", args[0])) {
			return
		}
		err = x.Save()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		fmt.Printf("%d combination(s) rewritten!\n", len(res.Rewritten))
	},
}

func init() {
	rootCmd.AddCommand(rewriteCmd)

	rewriteCmd.Flags().StringP("mod", "m", "", "The mod the vehicle belongs to, used when a referenced mod has no directory")
	_ = viper.BindPFlag("rewrite.mod", rewriteCmd.Flags().Lookup("mod"))
	rewriteCmd.Flags().Bool("dry-run", false, "Print the rewritten file instead of saving it")
	_ = viper.BindPFlag("rewrite.dry-run", rewriteCmd.Flags().Lookup("dry-run"))
}
