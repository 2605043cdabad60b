package main

import "github.com/uldin-nl/hostctl/cmd"

func main() {
	cmd.Execute()
}
