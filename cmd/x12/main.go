// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Command x12 decodes X12 EDI interchanges into JSON lines.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/z5labs/x12/internal/cli"
)

func main() {
	err := cli.Execute(context.Background(), os.Args[1:]...)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
