package main

import "github.com/theopenlane/dkimcheck/cmd"

func main() {
	cmd.Execute()
}
