package main

import "github.com/playground-x/neoradio/internal/cli"

func main() {
	cli.Execute()
}
