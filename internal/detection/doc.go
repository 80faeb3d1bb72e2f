// Package detection finds rectangular frames in rendered images.
//
// It is used to confirm that an infographic carries its border where the
// layout says it should, working from the PNG alone.
//
// # Algorithm Overview
//
// Detection is purely geometric:
//
//  1. Edge Detection: Mark pixels whose gray level differs from the right or
//     lower neighbor by more than EdgeThreshold.
//  2. Contour Finding: Group marked pixels into 8-connected contours with an
//     iterative flood fill, discarding contours under ten pixels.
//  3. Scoring: Compare each contour's length with its bounding box
//     perimeter (see DetectFrames).
//  4. Color Sampling: Read the stroke color from the middle of the top edge.
//
// # Coordinate System
//
// Frame bounds use image.Rectangle conventions in the image's own
// coordinate space:
//   - Origin at top-left
//   - X increases rightward, Y downward
//   - Min inclusive, Max exclusive
//
// # Strokes
//
// A stroke of two or more pixels yields two frames, one on each side of the
// stroke. The edges of a one pixel stroke touch and merge into a single
// contour that does not score as a frame, so borders are expected to be at
// least two pixels wide.
//
// # Performance
//
// Every pixel is visited a constant number of times. An 800x450 canvas
// costs a few megabytes of temporary slices.
package detection
