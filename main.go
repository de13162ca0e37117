package main

import (
	"github.com/saharabot/sahara/cmd"
)

func main() {
	cmd.Execute()
}
