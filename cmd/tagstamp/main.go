package main

import (
	"github.com/NVIDIA/tagstamp/pkg/cli"
)

func main() {
	cli.Execute()
}
