// The main package for the ufc-fight-scraper executable.
package main

import (
	"github.com/Dellali-Chakib/ufc-fight-scraper/cmd"
)

// main is the entry point of the application.
// It defers all execution to the Cobra CLI library.
func main() {
	cmd.Execute()
}
