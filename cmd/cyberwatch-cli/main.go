package main

import "github.com/nfrund/cyberwatch/cmd/cyberwatch-cli/cmd"

func main() {
	cmd.Execute()
}
