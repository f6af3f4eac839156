package cmd

import (
	"context"
	"flag"

	"github.com/etnz/finances"
	"github.com/etnz/finances/renderer"
	"github.com/google/subcommands"
)

type categoriesCmd struct{}

func (*categoriesCmd) Name() string     { return "categories" }
func (*categoriesCmd) Synopsis() string { return "list income and expense categories" }
func (*categoriesCmd) Usage() string {
	return `fin categories

  Lists income and expense categories.
`
}

func (*categoriesCmd) SetFlags(f *flag.FlagSet) {}

func (*categoriesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withLedger(func(l *session) subcommands.ExitStatus {
		printMarkdown(renderer.RenderCategories(renderer.NewCategories(l.Categories())))
		return subcommands.ExitSuccess
	})
}

type addCategoryCmd struct {
	kind  string
	icon  string
	color string
}

func (*addCategoryCmd) Name() string     { return "add-category" }
func (*addCategoryCmd) Synopsis() string { return "create a category" }
func (*addCategoryCmd) Usage() string {
	return `fin add-category [-type income|expense] [-icon <icon>] [-color <color>] <name>

Usage Examples:
$ fin add-category -type expense -icon 🐶 Pets
`
}

func (c *addCategoryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.kind, "type", "expense", "Category type: income or expense.")
	f.StringVar(&c.icon, "icon", "", "Icon, 💼 by default.")
	f.StringVar(&c.color, "color", "", "Display color, blue by default.")
}

func (c *addCategoryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	name, ok := nameArg(f)
	if !ok {
		return subcommands.ExitUsageError
	}
	kind, err := finances.ParseCategoryKind(c.kind)
	if err != nil {
		printError("Error: %v", err)
		return subcommands.ExitUsageError
	}

	return withLedger(func(l *session) subcommands.ExitStatus {
		cat, err := l.AddCategory(name, kind, c.icon, c.color)
		if err != nil {
			printError("Error: %v", err)
			return subcommands.ExitFailure
		}
		printSuccess("Category %s %q created.", cat.Icon, cat.Name)
		return subcommands.ExitSuccess
	})
}

type rmCategoryCmd struct{}

func (*rmCategoryCmd) Name() string     { return "rm-category" }
func (*rmCategoryCmd) Synopsis() string { return "remove categories by name" }
func (*rmCategoryCmd) Usage() string {
	return `fin rm-category <name>

  Removes every category with this name. Transactions keep their category label.
`
}

func (*rmCategoryCmd) SetFlags(f *flag.FlagSet) {}

func (*rmCategoryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	name, ok := nameArg(f)
	if !ok {
		return subcommands.ExitUsageError
	}
	return withLedger(func(l *session) subcommands.ExitStatus {
		found := false
		for _, c := range l.Categories() {
			found = found || c.Name == name
		}
		if !found {
			printError("Error: no category named %q", name)
			return subcommands.ExitFailure
		}
		if err := l.RemoveCategory(name); err != nil {
			printError("Error: %v", err)
			return subcommands.ExitFailure
		}
		printSuccess("Category %q removed.", name)
		return subcommands.ExitSuccess
	})
}
