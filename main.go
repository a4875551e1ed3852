package main

import (
	"os"

	"nlsqlchat/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
