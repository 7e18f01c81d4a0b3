package main

import (
	"reporules/internal/cmd"
)

func main() {
	cmd.Execute()
}
