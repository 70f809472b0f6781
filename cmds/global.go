package cmds

import "os"

// GlobalExecutor holds the commands defined by package init functions.
var GlobalExecutor = NewExecutor()

func Define(name string, command *Command) {
	GlobalExecutor.Define(name, command)
}

// Execute runs args against GlobalExecutor, defaulting to the process arguments.
func Execute(args []string) error {
	if args == nil {
		args = os.Args[1:]
	}
	return GlobalExecutor.Execute(args)
}
