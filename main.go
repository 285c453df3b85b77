package main

import "github.com/mj1618/desktop-relay/cmd"

func main() {
	cmd.Execute()
}
