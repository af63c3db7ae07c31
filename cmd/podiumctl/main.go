package main

import "github.com/okian/podium/internal/cli"

func main() {
	cli.Execute()
}
