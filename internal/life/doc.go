// Package life implements the grid model for Conway's Game of Life.
//
// A [Grid] is an immutable R×C matrix of [Cell] values. Every operation that
// changes cells returns a new grid and leaves its input untouched, so callers
// (renderers, tests, observers) may keep references to earlier generations:
//
//   - [New]: all-dead grid
//   - [Advance]: one generation under the B3/S23 rule
//   - [Randomize]: independent live cells at a given density
//   - [Grid.Set], [Grid.Toggle]: single-cell edits
//   - [Seed]: named patterns at a fixed anchor
//
// The topology is bounded: cells outside the grid count as dead.
package life
