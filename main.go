package main

import "github.com/timvw/replmux/cmd"

func main() {
	cmd.Execute()
}
