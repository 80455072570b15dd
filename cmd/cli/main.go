package main

import "github.com/dewarrum/vocabulary-client/cmd/cli/cmd"

func main() {
	cmd.Execute()
}
