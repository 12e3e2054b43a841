// Package main hosts the snapsort CLI entrypoint and command graph.
//
// The Cobra-based command tree covers running the classification daemon in
// the foreground, one-shot reclassification sweeps, inspecting the sorted
// bucket tree, notification testing, and configuration scaffolding. It
// centralizes configuration resolution and logger setup so subcommands can
// focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
