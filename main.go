package main

import (
	"github.com/Art0r/settings-automation/cmd"
	"github.com/Art0r/settings-automation/cmd/util"
)

func main() {
	defer util.HandlePanic()
	cmd.Execute()
}
