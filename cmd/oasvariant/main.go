package main

import (
	"os"

	"github.com/erraggy/oasvariant/cmd/oasvariant/commands"
)

func main() {
	os.Exit(commands.Execute(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
