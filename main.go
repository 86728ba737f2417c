package main

import "go-agroadvisor/cli"

func main() {
	cli.Execute()
}
