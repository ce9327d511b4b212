package main

import "github.com/alprnalcri/dyslexia-cli/internal/cli"

func main() {
	cli.Execute()
}
