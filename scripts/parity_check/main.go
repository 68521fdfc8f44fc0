// Command parity_check replays read-only admin endpoints against this API and
// the legacy admin backend, and reports status or payload divergences.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

func main() {
	var (
		base        string
		token       string
		legacyBase  string
		legacyToken string
		targetsPath string
		timeout     time.Duration
	)

	flag.StringVar(&base, "base", "http://localhost:8000/api", "admin API base URL")
	flag.StringVar(&token, "token", os.Getenv("PARITY_TOKEN"), "bearer token for the admin API")
	flag.StringVar(&legacyBase, "legacy-base", "http://localhost:8001/api", "legacy admin base URL")
	flag.StringVar(&legacyToken, "legacy-token", os.Getenv("PARITY_LEGACY_TOKEN"), "bearer token for the legacy admin")
	flag.StringVar(&targetsPath, "targets", filepath.Join("scripts", "parity_check", "targets.json"), "path to JSON targets file")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	targets, err := loadTargets(targetsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load targets: %v\n", err)
		os.Exit(2)
	}

	cmp := newComparer(&http.Client{Timeout: timeout}, side{Base: base, Token: token}, side{Base: legacyBase, Token: legacyToken}, targets.Volatile)

	results := make([]result, 0, len(targets.Endpoints))
	var breaking, optional int
	for _, ep := range targets.Endpoints {
		res := cmp.compare(ep)
		if res.diverged() {
			if ep.Critical {
				breaking++
			} else {
				optional++
			}
		}
		results = append(results, res)
	}

	printReport(results)
	fmt.Printf("Breaking diffs: %d, Optional diffs: %d\n", breaking, optional)
	if breaking > 0 {
		os.Exit(1)
	}
}

func loadTargets(path string) (*targetFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var tf targetFile
	if err := json.Unmarshal(data, &tf); err != nil {
		return nil, err
	}
	if len(tf.Endpoints) == 0 {
		return nil, fmt.Errorf("no endpoints defined in %s", path)
	}
	return &tf, nil
}

func printReport(results []result) {
	fmt.Println("Admin API Parity Report")
	fmt.Println("=======================")
	for _, res := range results {
		status := "OK"
		if res.Err != nil {
			status = "ERROR"
		} else if res.diverged() {
			status = "DIFF"
		}
		fmt.Printf("[%s] %s %s\n", status, res.Endpoint.Method, res.Endpoint.Path)
		if res.Err != nil {
			fmt.Printf("  Error: %v\n", res.Err)
			continue
		}
		fmt.Printf("  Status: %d (%s) | Legacy: %d (%s)\n", res.Status, res.Duration, res.LegacyStatus, res.LegacyDuration)
		fmt.Printf("  Status match: %t | Body match: %t | Critical: %t\n", res.StatusMatch, res.BodyMatch, res.Endpoint.Critical)
	}
}
