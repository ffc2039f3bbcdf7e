package cmd

import (
	"context"
	"io"
	"log"

	"github.com/jaffee/commandeer"
	"github.com/kbaseapps/qsip"
	"github.com/kbaseapps/qsip/workspace"
	"github.com/spf13/cobra"
)

// FetchMain is wrapped by NewFetchCommand and only exported for testing
// purposes.
var FetchMain *workspace.Main

// NewFetchCommand returns a new cobra command wrapping FetchMain.
func NewFetchCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	var err error
	FetchMain = workspace.NewMain()
	FetchMain.Stdout = stdout
	FetchMain.Log = qsip.StdLogger{Logger: log.New(stderr, "", log.LstdFlags)}
	fetchCommand := &cobra.Command{
		Use:   "fetch",
		Short: "fetch - save workspace objects as line separated JSON",
		Long: `Fetches objects from the KBase workspace, resolving the samples of
any sample set, and writes them as line separated JSON which "qsip convert"
can read with the file source.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return FetchMain.Run(context.Background())
		},
	}
	flags := fetchCommand.Flags()
	err = commandeer.Flags(flags, FetchMain)
	if err != nil {
		panic(err)
	}
	return fetchCommand
}

func init() {
	subcommandFns["fetch"] = NewFetchCommand
}
