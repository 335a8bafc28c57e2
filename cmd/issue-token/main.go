// Command issue-token prints a signed API token for a client.
//
// Usage:
//
//	issue-token --client=editor [--ttl=720h]
//
// Requires AUTH_JWT_SECRET; AUTH_JWT_ISSUER defaults to grammalecte-api.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/heartmarshall/grammalecte-api/internal/auth"
)

const defaultIssuer = "grammalecte-api"

func main() {
	client := flag.String("client", "", "client name recorded in the token subject")
	ttl := flag.Duration("ttl", 30*24*time.Hour, "token lifetime")
	flag.Parse()

	if *client == "" {
		fmt.Fprintln(os.Stderr, "Usage: issue-token --client=editor [--ttl=720h]")
		os.Exit(1)
	}

	_ = godotenv.Load()

	secret := os.Getenv("AUTH_JWT_SECRET")
	if len(secret) < 32 {
		log.Fatal("AUTH_JWT_SECRET must be set to at least 32 characters")
	}
	issuer := os.Getenv("AUTH_JWT_ISSUER")
	if issuer == "" {
		issuer = defaultIssuer
	}

	token, err := auth.NewJWTManager(secret, issuer, *ttl).GenerateToken(*client, *ttl)
	if err != nil {
		log.Fatalf("issue token: %v", err)
	}

	fmt.Println(token)
}
