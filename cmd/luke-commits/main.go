package main

import (
	"github.com/balzaczyy/goluke/luke/cli"
)

func main() {
	cli.Execute()
}
