// Command hash-generator produces a bcrypt digest for a password, for
// seeding accounts directly in the database during development.
package main

import (
	"flag"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	cost := flag.Int("cost", bcrypt.DefaultCost, "bcrypt cost factor")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: hash-generator [-cost N] <password>")
		os.Exit(2)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(flag.Arg(0)), *cost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to generate hash: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(string(hash))
}
