// Package types defines the shared data model for msfixture: manifest rows,
// pipeline invocation token lists, the result structs each fixture builder
// returns, the CLI configuration, and the sentinel errors callers match on.
//
// The three builders (scaffold, real-data harness, quant synthesizer) never
// depend on each other; they only meet here.
package types
