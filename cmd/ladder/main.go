package main

import "github.com/AdamBeresnev/club-ladder/internal/cli"

func main() {
	cli.Execute()
}
