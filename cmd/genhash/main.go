// cmd/genhash/main.go — prints a fresh salt and the matching password hash,
// for seeding a store by hand.
package main

import (
	"crypto/rand"
	"encoding/hex"
	"flag"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	password := flag.String("password", "", "password to hash (required)")
	flag.Parse()
	if *password == "" {
		panic("missing -password")
	}

	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	salt := hex.EncodeToString(b)

	h, err := bcrypt.GenerateFromPassword([]byte(salt+*password), 12)
	if err != nil {
		panic(err)
	}
	fmt.Printf("salt: %s\nhash: %s\n", salt, string(h))
}
