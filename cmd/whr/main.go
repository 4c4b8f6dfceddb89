// Package main provides the whr CLI application.
// whr reconciles World Happiness Report data for analysis.
package main

import (
	"github.com/happidata/whr/cmd"
)

func main() {
	cmd.Execute()
}
