package main

import "github.com/derickschaefer/truewage/cmd"

func main() {
	cmd.Execute()
}
