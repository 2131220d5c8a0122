package main

import (
	_ "github.com/joho/godotenv/autoload"

	"github.com/notargets/gopersa/cmd"
)

func main() {
	cmd.Execute()
}
