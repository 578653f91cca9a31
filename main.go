package main

import (
	"fmt"
	"log"

	"github.com/lazharichir/crazyeights/server"
)

func main() {
	fmt.Println("Starting Crazy Eights Tournament Backend...")

	s := server.NewServer()
	err := s.Start("7777")

	if err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
