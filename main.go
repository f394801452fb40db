package main

import "parts-manager/cmd"

func main() {
	cmd.Execute()
}
