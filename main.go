package main

import (
	_ "embed"

	"github.com/inkwells/smart-note-service/cmd"
)

//go:embed config/config.yaml
var c string

func main() {
	cmd.Execute(c)
}
