package main

import (
	"os"

	"github.com/gestock/gestock/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
