// Package testutil provides utilities for testing pkgprune components.
//
// Key components:
//   - TestEnvironment: a base directory on an in-memory or real filesystem
//   - Tree: declarative description of files and directories to create
//   - AssertExists / AssertMissing: filesystem state assertions
//
// Usage guidelines:
//   - Prefer EnvMemoryOnly; use EnvIsolated for symlink and permission cases
//   - All test data should be defined inline, not in external files
package testutil
