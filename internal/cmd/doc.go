// Package cmd provides the command-line interface implementation for assetvfs.
//
// It uses the Cobra library for command structure and Fang for styling.
//
// The package is organized into the following commands:
//   - root: Main command coordinator and entry point
//   - ls, cat, which, layers: inspection of the merged virtual tree
//   - mount: FUSE mounting of the merged tree
//   - count: File statistics for a virtual directory tree
//   - validate: Archive validation
//   - seed: Sample game generation
//
// Each command is implemented as a separate file with its own constructor
// function that returns a *cobra.Command. Commands that work on a game share
// the flags and loading logic in game.go, which drives the gamefs package.
package cmd
