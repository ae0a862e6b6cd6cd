package main

import "keys-monitor/cmd"

func main() {
	cmd.Execute()
}
