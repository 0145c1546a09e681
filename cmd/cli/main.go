package main

import "foodreview/cmd/cli/command"

func main() {
	command.Execute()
}
