package main

import "github.com/Tiliavir/toggl-tempo/cmd"

func main() {
	cmd.Execute()
}
