// claude-notify installs desktop notification hooks for Claude Code.
package main

import (
	"os"

	"github.com/xucongyong/claude-notify/internal/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
