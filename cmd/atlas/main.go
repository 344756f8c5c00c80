package main

import (
	"github.com/atlas-ocr/atlas/cmd/atlas/cmd"
)

func main() {
	cmd.Execute()
}
