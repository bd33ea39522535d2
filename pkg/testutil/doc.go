// Package testutil provides utilities for testing agents components.
//
// Key components:
//   - TempProject: a temporary project tree with a version-control marker
//   - CreateFile, CreateDir, CreateSymlink, Touch: real filesystem fixtures
//   - FakeEnv: an in-memory environment so tests never touch the process env
//
// Usage guidelines:
//   - All test data should be defined inline, not in external files
//   - Each test should be completely isolated with no shared state
package testutil
