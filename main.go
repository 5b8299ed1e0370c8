// Package main is the entry point for the ufametrics CLI tool, which derives
// possession and efficiency metrics from UFA play-by-play event streams.
package main

import "github.com/ultistats/go-ufa-metrics/cmd"

func main() {
	cmd.Execute()
}
