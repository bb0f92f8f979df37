package main

import "devflow/internal/cli"

func main() {
	cli.Execute()
}
