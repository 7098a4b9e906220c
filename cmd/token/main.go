// Command token issues a bearer token signed the same way the server
// verifies incoming credentials. It is meant for local testing and for
// provisioning service-to-service callers.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/MKhiriev/integrador/internal/utils"
)

type issuedToken struct {
	Token     string    `json:"token"`
	Subject   string    `json:"subject"`
	Issuer    string    `json:"issuer"`
	ExpiresAt time.Time `json:"expires_at"`
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("token", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	subject := fs.String("subject", "", "subject (sub) claim")
	issuer := fs.String("issuer", "integrador", "issuer (iss) claim, must match APP_TOKEN_ISSUER")
	key := fs.String("key", os.Getenv("APP_TOKEN_SIGN_KEY"), "signing key, defaults to APP_TOKEN_SIGN_KEY")
	duration := fs.Duration("duration", 24*time.Hour, "token lifetime")
	asJSON := fs.Bool("json", false, "print the token and its claims as JSON")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("error parsing flags: %w", err)
	}
	if *subject == "" {
		return errors.New("-subject is required")
	}
	if *key == "" {
		return errors.New("-key is required")
	}

	token, err := utils.GenerateJWTToken(*issuer, *subject, *duration, *key)
	if err != nil {
		return err
	}

	if !*asJSON {
		_, err = fmt.Fprintln(stdout, token.String())
		return err
	}

	return json.NewEncoder(stdout).Encode(issuedToken{
		Token:     token.String(),
		Subject:   token.Subject,
		Issuer:    token.Issuer,
		ExpiresAt: token.ExpiresAt.Time,
	})
}
