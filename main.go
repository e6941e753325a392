package main

import "github.com/Taichi-iskw/vidlike/cmd"

func main() {
	cmd.Execute()
}
