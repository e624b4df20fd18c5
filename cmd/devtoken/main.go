package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"trekmate/config"
	"trekmate/internal/infra/auth"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Supported subcommands:
// - issue:  Sign a development bearer token
// - verify: Check a token and print its claims

func main() {
	issueCmd := flag.NewFlagSet("issue", flag.ExitOnError)
	verifyCmd := flag.NewFlagSet("verify", flag.ExitOnError)

	issueSubject := issueCmd.String("sub", "", "User ID to sign in as (random when empty)")
	issueName := issueCmd.String("name", "Trekker", "Display name carried in the token")
	issueTTL := issueCmd.Duration("ttl", 0, "Token lifetime (auth.tokenTtl when zero)")

	verifyToken := verifyCmd.String("token", "", "Token to verify")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	switch os.Args[1] {
	case "issue":
		_ = issueCmd.Parse(os.Args[2:])
		err = issue(cfg, *issueSubject, *issueName, *issueTTL)
	case "verify":
		_ = verifyCmd.Parse(os.Args[2:])
		err = verify(context.Background(), cfg, *verifyToken)
	default:
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func issue(cfg *config.Config, subject, name string, ttl time.Duration) error {
	if ttl > 0 {
		cfg.Auth.TokenTTL = ttl
	}
	if subject == "" {
		subject = uuid.NewString()
	}

	svc, err := auth.NewJWTService(cfg)
	if err != nil {
		return err
	}

	token, expiresAt, err := svc.IssueToken(subject, name)
	if err != nil {
		return errors.Wrap(err, "issue token")
	}

	fmt.Printf("sub:     %s\n", subject)
	fmt.Printf("expires: %s\n", expiresAt.Format(time.RFC3339))
	fmt.Println(token)

	return nil
}

func verify(ctx context.Context, cfg *config.Config, token string) error {
	if token == "" {
		return errors.New("-token is required")
	}

	svc, err := auth.NewJWTService(cfg)
	if err != nil {
		return err
	}

	claims, err := svc.VerifyToken(ctx, token)
	if err != nil {
		return err
	}

	fmt.Printf("sub:     %s\n", claims.UserID)
	fmt.Printf("name:    %s\n", claims.DisplayName)
	fmt.Printf("expires: %s\n", claims.ExpiresAt.Format(time.RFC3339))

	return nil
}

func printUsage() {
	fmt.Println("Usage: devtoken <command> [options]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  issue   Sign a development bearer token")
	fmt.Println("  verify  Check a token and print its claims")
	fmt.Println()
	fmt.Println("Run 'devtoken <command> -h' for command options.")
}
