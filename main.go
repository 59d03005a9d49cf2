package main

import "github.com/anseninnov/conference-registration/cmd"

func main() {
	cmd.Execute()
}
