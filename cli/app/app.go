package app

import (
	"fmt"
	"os"
	"runtime"

	"github.com/fortuna-dev/ftapt/cli/token"
	"github.com/fortuna-dev/ftapt/pkg/config"
	"github.com/urfave/cli"
)

func versionPrinter(c *cli.Context) {
	_, _ = fmt.Fprintf(c.App.Writer, "ftaptctl\nVersion: %s\nGoVersion: %s\n",
		config.Version,
		runtime.Version(),
	)
}

// New creates a ftaptctl instance of [cli.App] with all commands included.
func New() *cli.App {
	cli.VersionPrinter = versionPrinter
	ctl := cli.NewApp()
	ctl.Name = "ftaptctl"
	ctl.Version = config.Version
	ctl.Usage = "FTAPT managed token control tool"
	ctl.ErrWriter = os.Stdout

	ctl.Commands = token.NewCommands()
	return ctl
}
