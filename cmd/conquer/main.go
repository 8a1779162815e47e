package main

import (
	"github.com/crayola-eater/code-and-conquer/internal/cli"
)

func main() {
	cli.Execute()
}
