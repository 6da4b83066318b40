package main

import "os"

func main() {
	defer cleanup()
	os.Exit(1) // want "avoid using os.Exit in main.main"
}

func cleanup() {
	// os.Exit outside main.main is allowed.
	helper()
}

func helper() {
	os.Exit(2)
}
