package main

import "github.com/misconfigmate/misconfigmate/cmd"

// execCmd is indirected so tests can intercept the entry point.
var execCmd = cmd.Execute

func main() {
	execCmd()
}
