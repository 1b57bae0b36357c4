package main

import (
	_ "github.com/joho/godotenv/autoload"

	"github.com/mcoot/pairings-web/internal/cli"
)

func main() {
	cli.Execute()
}
