package main

import (
	"github.com/ropolomx/jcvi/cmd"
)

func main() {
	cmd.Execute() // initialize cobra commands
}
