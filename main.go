package main

import "github.com/bz888/docask/cmd"

func main() {
	cmd.Execute()
}
