package main

import (
	"log"

	"github.com/patric-chuzhbe/daybook/internal/app"
)

func main() {
	theApp, err := app.New()
	if err != nil {
		log.Fatalln("Error creating the application:", err)
	}
	defer theApp.Close()

	if err := theApp.Run(); err != nil {
		log.Fatalln("Error running the application:", err)
	}
}
