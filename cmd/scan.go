package cmd

import (
	"fmt"
	"os"

	"github.com/fsmodding/moddir/core"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vbauerster/mpb/v4"
	"github.com/vbauerster/mpb/v4/decor"
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:     "scan",
	Short:   "Rebuild the mod registry from the mods folder",
	Aliases: []string{"refresh"},
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		folder := viper.GetString("mods-folder")
		fmt.Printf("Scanning %s...\n", folder)

		progress := mpb.New()
		var bar *mpb.Bar
		reg, failed, err := core.ScanModsFolder(folder, viper.GetString("registry-file"), func(done int, total int) {
			if bar == nil {
				bar = progress.AddBar(int64(total),
					mpb.PrependDecorators(decor.Name("Reading mods")),
					mpb.AppendDecorators(decor.CountersNoUnit("%d / %d")),
				)
			}
			bar.Increment()
		})
		progress.Wait()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		for _, err := range failed {
			fmt.Printf("Skipped %v\n", err)
		}
		err = reg.Write()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		fmt.Printf("Registry written with %d mod(s)!\n", len(reg.Mods))
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
}
