package main

import (
	"github.com/promo-watch/promoscrape/internal/cli"
)

func main() {
	cli.Execute()
}
