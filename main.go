package main

import (
	"github.com/movq/moviefetch/cmd"
)

func main() {
	cmd.Execute()
}
