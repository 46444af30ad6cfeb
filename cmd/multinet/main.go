package main

import (
	"os"

	"github.com/multinet-app/multinet-go/internal/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args))
}
