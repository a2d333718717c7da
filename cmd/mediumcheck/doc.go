// Package main hosts the mediumcheck CLI.
//
// The Cobra command tree resolves hovered or typed text against a Kodi
// library: `check` runs a single lookup, `serve` exposes the resolver on a
// Unix socket, and `inspect` drives the hover controller over an HTML page
// with a scripted pointer. Configuration resolution and logger setup are
// centralized in the command context so subcommands only wire components.
package main
