package cli

import (
	"fmt"

	"github.com/common-nighthawk/go-figure"
	"github.com/dmitrijs2005/scanboard/internal/common"
	"github.com/spf13/cobra"
)

// Version is overridden at build time:
//
//	go build -ldflags "-X github.com/dmitrijs2005/scanboard/internal/client/cli.Version=v1.2.3"
var Version = "dev"

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			w := cmd.OutOrStdout()
			fmt.Fprint(w, figure.NewFigure(common.AppName, "cybermedium", true).String())
			fmt.Fprintln(w)
			fmt.Fprintf(w, "%s %s\n", common.AppName, Version)
		},
	}
}
