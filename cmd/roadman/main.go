// Command roadman is the Roadman language toolchain: it runs scripts,
// hosts an interactive session, and transpiles sources to JavaScript.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "roadman 0.1.0-dev"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "roadman",
		Short:         "Roadman language toolchain",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetVersionTemplate("{{.Version}}\n")

	root.AddCommand(newRunCommand())
	root.AddCommand(newReplCommand())
	root.AddCommand(newTranspileCommand())
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the toolchain version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	})
	return root
}
