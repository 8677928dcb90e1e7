package main

import "condarecipe/internal/cli"

func main() {
	cli.Execute()
}
