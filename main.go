package main

import (
	"github.com/roboblog/suite/internal/command"
)

func main() {
	command.RunCLI()
}
