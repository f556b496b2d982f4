package utils

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
	"github.com/spf13/viper"
)

// Documentation formats understood by GenerateDocs
const (
	FormatMarkdown = "markdown"
	FormatMan      = "man"
)

// GenerateDocs writes one page per command under root into outDir. With noDate set the pages leave out
// the generated-on footer, so regenerating them only changes what changed in the commands.
func GenerateDocs(root *cobra.Command, outDir string, format string, noDate bool) error {
	if err := os.MkdirAll(outDir, os.ModePerm); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}
	root.DisableAutoGenTag = noDate
	switch strings.ToLower(format) {
	case FormatMarkdown, "md":
		return doc.GenMarkdownTree(root, outDir)
	case FormatMan:
		return doc.GenManTree(root, &doc.GenManHeader{
			Title:   strings.ToUpper(root.Name()),
			Section: "1",
			Source:  "moddir",
			Manual:  "moddir manual",
		}, outDir)
	default:
		return fmt.Errorf("unknown documentation format %q", format)
	}
}

// docsCmd represents the docs command
var docsCmd = &cobra.Command{
	Use:     "docs",
	Short:   "Generate documentation for every moddir command",
	Aliases: []string{"markdown", "md"},
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		outDir := viper.GetString("utils.docs.dir")
		format := viper.GetString("utils.docs.format")
		if cmd.CalledAs() != "docs" && !cmd.Flags().Changed("format") {
			format = FormatMarkdown
		}
		err := GenerateDocs(cmd.Root(), outDir, format, viper.GetBool("utils.docs.no-date"))
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		fmt.Printf("Generated %s docs in %s!\n", format, outDir)
	},
}

func init() {
	utilsCmd.AddCommand(docsCmd)

	docsCmd.Flags().String("dir", "docs", "The destination directory to save docs in")
	_ = viper.BindPFlag("utils.docs.dir", docsCmd.Flags().Lookup("dir"))
	docsCmd.Flags().String("format", FormatMarkdown, "Documentation format (markdown or man)")
	_ = viper.BindPFlag("utils.docs.format", docsCmd.Flags().Lookup("format"))
	docsCmd.Flags().Bool("no-date", false, "Leave out the generated-on footer, for reproducible docs")
	_ = viper.BindPFlag("utils.docs.no-date", docsCmd.Flags().Lookup("no-date"))
}
