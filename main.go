package main

import "github.com/srbarik25/opsagent/cmd"

func main() {
	cmd.Execute()
}
