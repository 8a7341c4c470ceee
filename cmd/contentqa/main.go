package main

import (
	"os"

	"github.com/dave/jobwiz-sub002/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:], os.Stdout, os.Stderr))
}
