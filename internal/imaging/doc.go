// Package imaging is the I/O glue between image files and the segmentation
// core.
//
// It provides a cached image loader, conversion between image.Image and the
// core's PixelGrid, optional preprocessing (crop, resize, Gaussian blur)
// applied before segmentation, and helpers for writing or base64-packaging
// results.
//
// # Coordinate Systems
//
// image.Image uses (x, y) with x across the width; the segmentation core
// uses matrix coordinates with x as the row. GridFromImage and the colorized
// output of the core handle the transposition, so callers on either side
// stay in their native convention.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. The conversion and preprocessing
// functions are stateless.
package imaging
