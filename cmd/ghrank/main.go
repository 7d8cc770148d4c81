package main

import "github.com/agenthands/ghrank/cmd/ghrank/cmd"

func main() {
	cmd.Execute()
}
