// Copyright (c) 2026 Aethercal. All rights reserved.

// Command hashgen prints the bcrypt hash of a password for use as
// MASTER_PASSWORD_HASH or CAMPAIGN_DELETE_HASH.
//
// Usage:
//
//	hashgen <password>
package main

import (
	"fmt"
	"os"

	"github.com/aetherialcal/aethercal/internal/platform/sec"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: hashgen <password>")
		os.Exit(2)
	}

	hash, err := sec.HashPassword(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, "hashgen:", err)
		os.Exit(1)
	}

	fmt.Println(hash)
}
