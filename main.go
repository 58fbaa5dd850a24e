package main

import "github.com/Jesus-jpg1/GECC-System/cmd"

func main() {
	cmd.Execute()
}
