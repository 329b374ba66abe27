// Package app wires the application together: logger construction, manifest
// loading, the native-core probe, capability loading and validation, the
// optional health/metrics server, and the Run-mode dispatch used by the CLI.
package app
