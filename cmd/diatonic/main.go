package main

import "github.com/aalvaropc/diatonic/internal/cli"

func main() {
	cli.Execute()
}
