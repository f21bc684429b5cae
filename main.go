package main

import "github.com/dt-pm-tools/issue-probe/cmd"

func main() {
	cmd.Execute()
}
