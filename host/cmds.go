package host

import "github.com/beevik/cmd"

var cmds *cmd.Tree

func init() {
	root := cmd.NewTree(cmd.TreeDescriptor{Name: "go6809"})
	root.AddCommand(cmd.CommandDescriptor{
		Name:        "help",
		Description: "Display a summary of all commands. A command name argument is accepted but ignored.",
		Usage:       "help [<command>]",
		Data:        (*Host).cmdHelp,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:  "assemble",
		Brief: "Assemble a file and save the binary",
		Description: "Run the cross-assembler on the specified file and" +
			" save the binary file. The listing and exported symbols are" +
			" kept in memory for the listing and exports commands; no" +
			" listing or symbol file is written.",
		Usage: "assemble <filename>",
		Data:  (*Host).cmdAssemble,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:  "exports",
		Brief: "List exported symbols",
		Description: "Display the symbols exported by the most recent" +
			" assembly, with their final addresses.",
		Usage: "exports",
		Data:  (*Host).cmdExports,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:  "listing",
		Brief: "Display assembly listing",
		Description: "Display lines from the most recent assembly's" +
			" listing. The number of lines shown defaults to the" +
			" ListLines setting.",
		Usage: "listing [<lines>]",
		Data:  (*Host).cmdListing,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:  "set",
		Brief: "Set a configuration variable",
		Description: "Set the value of a configuration variable. To see" +
			" all variables and their current values, type set without" +
			" any arguments.",
		Usage: "set [<var> <value>]",
		Data:  (*Host).cmdSet,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:        "quit",
		Brief:       "Quit the program",
		Description: "Quit the program.",
		Usage:       "quit",
		Data:        (*Host).cmdQuit,
	})
	cmds = root
}

// Command summaries displayed by the help command.
var helpLines = []struct {
	name  string
	brief string
}{
	{"assemble", "Assemble a file and save the binary"},
	{"exports", "List exported symbols"},
	{"listing", "Display assembly listing"},
	{"set", "Set a configuration variable"},
	{"quit", "Quit the program"},
}
