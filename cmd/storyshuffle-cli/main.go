package main

import "storyshuffle/cmd/storyshuffle-cli/cmd"

func main() {
	cmd.Execute()
}
