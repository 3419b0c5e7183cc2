package main

import (
	_ "embed"

	"github.com/solenote/note-keeper-service/cmd"
)

//go:embed config/config.yaml
var c string

func main() {
	cmd.Execute(c)
}
