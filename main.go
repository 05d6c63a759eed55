package main

import "github.com/lepinkainen/reelscout/cmd"

var execute = cmd.Execute

func main() {
	execute()
}
