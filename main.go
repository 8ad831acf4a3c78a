package main

import "github.com/notargets/eulerdg/cmd"

func main() {
	cmd.Execute()
}
