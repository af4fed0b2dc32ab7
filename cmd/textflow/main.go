package main

import (
	// Load OPENAI_API_KEY and friends from a local .env file when present.
	_ "github.com/joho/godotenv/autoload"
)

func main() {
	Execute()
}
