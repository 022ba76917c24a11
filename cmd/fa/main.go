package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	err := Execute(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
