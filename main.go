package main

import "github.com/cmmoran/creatorgen/cmd"

func main() {
	cmd.Execute()
}
