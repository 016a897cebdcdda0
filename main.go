package main

import "github.com/ryan-gang/bookmark-convert/cmd"

func main() {
	cmd.Execute()
}
