package main

import "github.com/atikulmunna/jsonpretty/internal/cmd"

func main() {
	cmd.Execute()
}
