package main

import "github.com/robalobadob/wordscramble/internal/cli"

func main() {
	cli.Execute()
}
