package main

import "github.com/graviton-network/graviton-go/cmd/graviton/cmd"

func main() {
	cmd.Execute()
}
