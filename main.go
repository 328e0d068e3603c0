package main

import (
	"github.com/hance08/pots/cmd"
	"github.com/hance08/pots/migrations"
)

func main() {
	cmd.Execute(migrations.FS)
}
