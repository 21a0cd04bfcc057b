package main

import "github.com/itsmostafa/gobook/cmd"

func main() {
	cmd.Execute()
}
