package main

import "github.com/okian/kpastro/internal/commands"

func main() {
	commands.Execute()
}
