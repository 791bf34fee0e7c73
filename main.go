package main

import "helpify.com/helpify/cmd"

func main() {
	cmd.Execute()
}
