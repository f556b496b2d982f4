package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/fsmodding/moddir/core"
	"github.com/fsmodding/moddir/hooks"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// reconcileCmd represents the reconcile command
var reconcileCmd = &cobra.Command{
	Use:   "reconcile [store.toml]",
	Short: "Resolve store combinations and link them to store items",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		reg, err := loadRegistry()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		var cat *core.Catalog
		var stats core.ReconcileStats
		if viper.GetBool("reconcile.wait") {
			cat, stats = waitForCatalog(args[0], reg)
			if cat == nil {
				fmt.Println("Store catalog was not populated in time")
				os.Exit(1)
			}
		} else {
			cat, err = core.LoadCatalog(args[0])
			if err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
			stats = core.Reconcile(cat, core.NewResolver(reg), core.NewLogger())
		}
		fmt.Printf("%d combination(s) reconciled, %d rewritten, %d linked, %d already done\n",
			stats.Visited, stats.Rewritten, stats.Linked, stats.Skipped)

		err = cat.Write()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		fmt.Println("Store catalog updated!")
	},
}

// waitForCatalog reloads the catalog file until it has at least one item, then runs the fallback pass
// the same way the game integration does. It returns a nil catalog if the poll timed out.
func waitForCatalog(file string, mods core.ModLookup) (*core.Catalog, core.ReconcileStats) {
	var current *core.Catalog
	load := func() *core.Catalog {
		c, err := core.LoadCatalog(file)
		if err != nil {
			return nil
		}
		current = c
		return c
	}
	cfg := hooks.Config{
		PollInterval: viper.GetDuration("poll.interval"),
		PollTimeout:  viper.GetDuration("poll.timeout"),
	}
	in := hooks.NewIntegration(&hooks.Host{}, mods, load, cfg, core.NewLogger())
	in.OnMapLoaded()

	tick := cfg.PollInterval
	if tick < 100*time.Millisecond {
		tick = 100 * time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()
	last := time.Now()
	for in.Pending() {
		now := <-ticker.C
		in.Update(now.Sub(last))
		last = now
	}
	if !in.Done() {
		return nil, core.ReconcileStats{}
	}
	return current, in.Stats()
}

func init() {
	rootCmd.AddCommand(reconcileCmd)

	reconcileCmd.Flags().BoolP("wait", "w", false, "Wait for the store catalog to have at least one item")
	_ = viper.BindPFlag("reconcile.wait", reconcileCmd.Flags().Lookup("wait"))
	reconcileCmd.Flags().Duration("poll-interval", time.Second, "How often to check the store catalog when waiting")
	_ = viper.BindPFlag("poll.interval", reconcileCmd.Flags().Lookup("poll-interval"))
	reconcileCmd.Flags().Duration("poll-timeout", 0, "Stop waiting after this long (0 waits forever)")
	_ = viper.BindPFlag("poll.timeout", reconcileCmd.Flags().Lookup("poll-timeout"))
}
