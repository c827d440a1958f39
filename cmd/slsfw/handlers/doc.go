// Package handlers implements the CLI commands. Collaborators are created
// through package-level factory variables so tests can replace them.
package handlers
