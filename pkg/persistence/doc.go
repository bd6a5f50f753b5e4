// Package persistence saves and restores feature trees.
//
// A Snapshot flattens a tree into pre-order node records together with the
// placements bound to its features. Restoring a snapshot rebuilds the tree
// through the feature constructors, so mandatory subfeatures are created by
// their owners and only checked against the recorded ones.
package persistence
