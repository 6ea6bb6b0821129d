package main

import (
	"log"

	"github.com/NVIDIA/tagstamp/pkg/api"
)

func main() {
	if err := api.Serve(); err != nil {
		log.Fatal(err)
	}
}
