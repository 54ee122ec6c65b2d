package main

import "zmimport/cmd"

func main() {
	cmd.Execute()
}
