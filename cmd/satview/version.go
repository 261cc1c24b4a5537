package main

import (
	"fmt"

	cli "gopkg.in/urfave/cli.v1"
)

// version is set at build time via -ldflags
var version = "dev"

func versionAction(*cli.Context) {
	fmt.Printf("satview %s\n", version)
}
