package main

import (
	"os"

	"kosis-cpi/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
