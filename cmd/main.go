package main

import (
	"fmt"
	"os"

	"github.com/cemkeylan/doas-edit/internal/interfaces/cli"
	"github.com/cemkeylan/doas-edit/internal/interfaces/di"
)

func main() {
	container, err := di.NewContainer("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize application: %v\n", err)
		os.Exit(1)
	}

	cli.Execute(container.GetCLIContainer())
}
