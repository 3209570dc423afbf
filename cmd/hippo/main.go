package main

import "github.com/techimg/hippo-tracker/internal/cli"

func main() {
	cli.Execute()
}
