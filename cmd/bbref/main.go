package main

import "github.com/pfrederiksen/bbref/internal/cli"

func main() {
	cli.Execute()
}
