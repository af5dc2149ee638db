package main

import "github.com/Biskuitttt/Suratt/internal/cli"

func main() {
	cli.Execute()
}
