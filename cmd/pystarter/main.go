package main

import (
	"os"

	"github.com/goliatone/go-pystarter/internal/commands"
)

func main() {
	os.Exit(commands.Execute())
}
