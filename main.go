package main

import "github.com/luxmesh/lampd/cmd"

func main() {
	cmd.Execute()
}
