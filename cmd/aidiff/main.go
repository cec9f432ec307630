package main

import (
	"os"

	"github.com/aidiff/aidiff/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
