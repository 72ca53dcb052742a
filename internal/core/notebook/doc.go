// Package notebook holds the in-memory notebook document model.
//
// A Document owns an ordered sequence of cells. Cell identity is pointer
// identity: callers refer to a cell by the *Cell they were handed and the
// document re-derives the cell's index on every operation, so no positions
// are cached anywhere.
//
// Documents are produced by a Resolver. FileResolver understands nbformat
// JSON (.ipynb) and plain markdown (.md), where fenced code blocks become
// code cells and everything between them becomes markdown cells.
package notebook
