package main

import (
	"log"

	"pong-web/internal/cli"
)

func main() {
	if err := cli.NewCommand(cli.StaticOnly).Execute(); err != nil {
		log.Fatalf("web server error: %v", err)
	}
}
