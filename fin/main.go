// Command fin tracks personal finances: accounts, categories, income,
// expenses and transfers.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/etnz/finances/cmd"
	"github.com/google/subcommands"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, "fin")
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")

	cmd.Init(flag.CommandLine)
	cmd.Register(commander)

	// Exits when invoked by the shell to complete the command line.
	cmd.Completion(commander).Complete("fin")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
