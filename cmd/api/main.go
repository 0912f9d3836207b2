package main

import (
	"log"

	"pong-web/internal/cli"
)

func main() {
	if err := cli.NewCommand(cli.Full).Execute(); err != nil {
		log.Fatalf("api server error: %v", err)
	}
}
