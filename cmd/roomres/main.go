package main

import "github.com/olinlib/roomres/internal/cli"

func main() {
	cli.Execute()
}
