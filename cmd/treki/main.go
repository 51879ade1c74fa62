package main

import "treki/internal/cli"

func main() {
	cli.Execute()
}
