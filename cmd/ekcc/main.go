package main

import (
	"fmt"
	"os"

	"github.com/ekcc-lang/ekcc/cmd/ekcc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
