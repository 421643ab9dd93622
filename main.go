package main

import "github.com/habitflow/habitflow/cmd"

func main() {
	cmd.Execute()
}
