package main

import "github.com/St1cky1/flight-planner/internal/cli"

func main() {
	cli.Execute()
}
