package main

import "github.com/graphmesh/gqltel/internal/cli"

func main() {
	cli.Execute()
}
