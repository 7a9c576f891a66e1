package main

import "comicvault/cmd/cli/command"

func main() {
	command.Execute()
}
