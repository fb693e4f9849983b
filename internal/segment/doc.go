// Package segment implements seeded, threshold-driven region growing over
// raster images.
//
// The package partitions a PixelGrid into connected regions of visually
// similar pixels. A Grower either treats every pixel as an implicit seed
// (exhaustive mode) or consumes a caller-supplied seed list (seeded mode),
// drives a depth-first traversal through an explicit LIFO Frontier, and
// assigns every reached pixel a region label in a LabelMap.
//
// # Coordinate System
//
// The core uses matrix-style coordinates: x is the row index in [0, height),
// y is the column index in [0, width). This differs from the image.Image
// convention; the imaging glue converts at the boundary. All coordinates are
// 0-based.
//
// # Traversal Order
//
// Traversal order is part of the observable contract. Growth is depth-first
// via the explicit LIFO Frontier, neighbors are visited with the row offset
// in the outer loop and the column offset in the inner loop, and exhaustive
// seeds are scanned row-major. The adaptive threshold tracks a running mean
// over admitted pixels, so any change in visitation order changes region
// boundaries. Do not replace the stack with recursion or a queue.
//
// # Similarity Rules
//
// Two similarity policies are provided. FixedPolicy accepts a candidate when
// its Euclidean color distance to the region's original seed pixel is below
// a fixed threshold. AdaptivePolicy compares the candidate against the
// currently popped pixel and accepts below a running variance that starts at
// the threshold, follows the mean brightness of admitted pixels, and never
// drops below the configured floor.
//
// # Concurrency
//
// A Grower is single-threaded and not safe for concurrent use. Runs cannot
// be cancelled mid-flight; seeded runs are bounded by a fixed iteration cap
// and may return a valid partial labeling when it fires.
package segment
