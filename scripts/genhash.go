// genhash prints bcrypt hashes for seeding users directly into a store.
//
//	go run ./scripts -cost 12 secret1 secret2
package main

import (
	"flag"
	"fmt"
	"os"

	"interview-experience-backend/pkg/auth"
)

func main() {
	cost := flag.Int("cost", 10, "bcrypt cost")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: genhash [-cost N] password...")
		os.Exit(2)
	}

	hasher := auth.NewPasswordHasher(*cost)
	for _, pass := range flag.Args() {
		hash, err := hasher.Hash(pass)
		if err != nil {
			fmt.Println("Error:", err)
			continue
		}
		fmt.Printf("Password: %s\nHash: %s\n\n", pass, hash)
	}
}
