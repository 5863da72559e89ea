package store

import (
	"embed"
	"fmt"
)

//go:embed schema/*.sql
var schemas embed.FS

// Schema returns the reference DDL of the orders table for a dialect. The
// service never runs it; it is there for provisioning scripts and tests.
func Schema(d Dialect) (string, error) {
	b, err := schemas.ReadFile("schema/" + d.Name + ".sql")
	if err != nil {
		return "", fmt.Errorf("schema for %s: %w", d.Name, err)
	}
	return string(b), nil
}
