// Command healthcheck probes a running server and exits 0 when the root
// route answers with the expected greeting, 1 otherwise. It is small enough
// to be used directly as a container HEALTHCHECK.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/MKhiriev/integrador/internal/adapter"
	"github.com/MKhiriev/integrador/internal/logger"
)

const (
	exitHealthy   = 0
	exitUnhealthy = 1
)

func main() {
	url := flag.String("url", "http://localhost:8080/", "server base url")
	timeout := flag.Duration("timeout", 5*time.Second, "probe timeout")
	checkDocs := flag.Bool("docs", false, "also require the api docs to be served")
	level := flag.String("log-level", "disabled", "log level")
	flag.Parse()

	log := logger.NewLogger("integrador-healthcheck", *level)

	serverAdapter, err := adapter.NewHTTPServerAdapter(*url, *timeout, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitUnhealthy)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	os.Exit(probe(ctx, serverAdapter, *checkDocs, os.Stdout, os.Stderr))
}

// probe runs the checks and returns the process exit code.
func probe(ctx context.Context, serverAdapter adapter.ServerAdapter, checkDocs bool, stdout, stderr io.Writer) int {
	health, err := serverAdapter.Health(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "unhealthy: %v\n", err)
		return exitUnhealthy
	}

	if checkDocs {
		raw, err := serverAdapter.Docs(ctx)
		if err != nil {
			fmt.Fprintf(stderr, "docs unavailable: %v\n", err)
			return exitUnhealthy
		}
		if !json.Valid(raw) {
			fmt.Fprintln(stderr, "docs unavailable: response is not json")
			return exitUnhealthy
		}
	}

	fmt.Fprintln(stdout, health.Message)
	return exitHealthy
}
