//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "retail-inventory-api"
	ConsumerName = "order-portal"

	StateOrderExists    = "a pending order for two desk lamps exists"
	StateOrderMissing   = "no order with the missing id exists"
	StateCatalogInStock = "customer and desk lamp with stock 10 exist"
	StateCatalogLow     = "customer and desk lamp with stock 2 exist"
)

const (
	ExistingOrderID = "6f0c1a52-8d4e-4c1b-9a77-0d3f5e2b9c10"
	MissingOrderID  = "00000000-0000-4000-8000-000000000404"
	CustomerID      = "2b7e9d3a-1c45-4f8e-b0a6-5d9c8e7f6a21"
	ProductID       = "9a4d2c1e-7b3f-4e6a-8c5d-1f2e3a4b5c6d"

	ProductName  = "Desk Lamp"
	ProductSKU   = "LIGHT-0A1B2C3D"
	ProductPrice = "24.99"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the pact file the order portal consumer writes.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
