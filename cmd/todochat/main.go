// Package main is the todochat binary: a todo list and a single chat room
// kept in a local state file.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/idilsaglam/todochat/internal/cli"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(1)
		}
	}()

	code := cli.Execute(os.Args[1:], os.Stdout, os.Stderr)
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(code)
}
