package main

import (
	"graze/cmd/graze/commands"
)

func main() {
	commands.Execute()
}
