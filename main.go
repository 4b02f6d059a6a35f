package main

import "github.com/wavefarer/ndbc/cmd"

func main() {
	cmd.Execute()
}
