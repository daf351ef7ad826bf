package main

import (
	"log"
	"os"

	"github.com/goliatone/go-formkit/cmd/formkit-cli/cmd"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("formkit: ")

	if err := cmd.Execute(); err != nil {
		if cmd.Reported(err) {
			os.Exit(1)
		}
		log.Fatal(err)
	}
}
