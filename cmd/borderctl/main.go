// Command borderctl works with animated border configurations kept in
// border.yaml.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/animatedborder/cmd/borderctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
