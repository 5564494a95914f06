package main

import "github.com/lepinkainen/bookdex/cmd"

var execute = cmd.Execute

func main() {
	execute()
}
