// Package main is the entry point for the SSHFS mount monitor.
package main

import (
	"sshfs-monitor/cmd/sshfsmon/cmd"
)

func main() {
	cmd.Execute()
}
