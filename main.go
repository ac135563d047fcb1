package main

import "github.com/leadscope/leadscope-cli/cmd"

func main() {
	cmd.Execute()
}
