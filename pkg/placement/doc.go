// Package placement binds concrete values to the features of a model tree.
//
// Every feature kind declares the placement type it requires (see
// feature.PlacementType). A Binder records values against features, rejects
// values of the wrong type, and reports which required placements are still
// missing before the model can be analyzed.
package placement
