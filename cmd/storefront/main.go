package main

import (
	"os"

	"github.com/WilliamClf/ecommerce-shop/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
