// v1
// cmd/ferienplanung/main.go
package main

import (
	"os"

	"github.com/timeisseler/ferienplanung/cmd/ferienplanung/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
