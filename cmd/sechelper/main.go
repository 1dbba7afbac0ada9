// Command sechelper watches addresses on Ethereum and raises security alerts.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/urfave/cli.v1"
)

const (
	exitFatal = 1
	exitUsage = 2
)

var (
	// Git SHA1 commit hash of the release (set via linker flags)
	gitCommit = ""
	gitDate   = ""
)

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = filepath.Base(os.Args[0])
	app.Usage = "on-chain security watcher"
	app.Version = fmt.Sprintf("%s - %s", gitCommit, gitDate)
	app.Flags = []cli.Flag{configFileFlag}
	app.Commands = []cli.Command{
		activityCommand,
		thresholdCommand,
		mixingCommand,
		eventsCommand,
		fetchCommand,
	}
	return app
}

// exitCode maps a command error to the process exit status.
func exitCode(err error) int {
	var usageErr *usageError
	if errors.As(err, &usageErr) {
		return exitUsage
	}
	return exitFatal
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}
