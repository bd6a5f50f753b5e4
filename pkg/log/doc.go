// Package log provides structured model event capture for feature trees.
//
// This package defines the Logger interface and Event type used to record
// what happened while a model was being defined: features constructed,
// subfeatures added, subtrees cloned, placements bound and operations that
// failed. It is separate from operational logging (slog) - event capture
// provides a complete machine-readable trace of model definition.
//
// # Basic Usage
//
// Trees are given a Logger at construction:
//
//	// For development: log to console via slog
//	body := feature.NewRigidBody("bicep", feature.WithLogger(log.NewSlogAdapter(slog.Default())))
//
//	// For later analysis: write to binary file
//	fl, _ := log.NewFileLogger("/tmp/arm.mbl")
//	body := feature.NewRigidBody("bicep", feature.WithLogger(fl))
//
//	// Both: use MultiLogger
//	logger := log.NewMultiLogger(log.NewSlogAdapter(slog.Default()), fl)
//
// # File Format
//
// Log files use CBOR encoding with .mbl extension. The mbm-log CLI tool
// provides viewing, statistics and export.
package log
