package main

import (
	"fmt"
	"os"

	"check-elasticsearch-snapshots/cmd"
)

func main() {
	if err := cmd.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}
}
