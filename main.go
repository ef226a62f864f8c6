package main

import "github.com/accordhq/accord/cmd"

func main() {
	cmd.Execute()
}
