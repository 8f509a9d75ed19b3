package main

import "github.com/neonsnake/neonsnake-backend/internal/cli"

func main() {
	cli.Execute()
}
