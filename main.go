package main

import (
	"github.com/fsmodding/moddir/cmd"

	// Command groups of moddir
	_ "github.com/fsmodding/moddir/utils"
)

func main() {
	cmd.Execute()
}
