package detection

import (
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/ironsheep/indic-infographic-mcp/internal/imaging"
)

// EdgeThreshold is the minimum gray-level step treated as an edge.
const EdgeThreshold = 30.0

const minContour = 10

// Frame is a rectangular outline found in an image.
type Frame struct {
	Bounds image.Rectangle `json:"bounds"`
	Color  string          `json:"color"`
	Score  float64         `json:"score"`
}

// Area returns the frame's bounding box area.
func (f Frame) Area() int {
	return f.Bounds.Dx() * f.Bounds.Dy()
}

// DetectFrames finds rectangular outlines such as an infographic border.
//
// Parameters:
//   - img: Image to scan.
//   - minArea: Minimum bounding-box area in pixels. Smaller outlines, such as
//     glyph contours, are discarded.
//   - tolerance: Minimum rectangularity score, 0 to 1.
//
// Returns the frames that pass both filters, largest bounding box first.
//
// # Rectangularity Score
//
// A one-pixel-wide closed outline around a box of w x h pixels has about
// 2*((w-1) + (h-1)) pixels. The score compares the contour length with that
// perimeter:
//
//	score = 1 - |len(contour) - perimeter| / perimeter
//
// A clean border scores close to 1. Text contours are much longer or
// shorter than their box perimeter and score low.
//
// # Limitations
//
//   - Only axis-aligned frames are found.
//   - Frames touching the right or bottom image edge lose that edge.
//   - Outlines in a color within EdgeThreshold gray levels of the background
//     are invisible.
func DetectFrames(img image.Image, minArea int, tolerance float64) []Frame {
	b := img.Bounds()
	edges := detectEdges(img)

	var frames []Frame
	for _, contour := range findContours(edges) {
		box := contourBounds(contour).Add(b.Min)
		if box.Dx()*box.Dy() < minArea {
			continue
		}

		perimeter := 2 * (box.Dx() - 1 + box.Dy() - 1)
		if perimeter <= 0 {
			continue
		}
		score := 1 - math.Abs(float64(len(contour)-perimeter))/float64(perimeter)
		if score < tolerance {
			continue
		}

		frames = append(frames, Frame{
			Bounds: box,
			Color:  strokeColor(img, box),
			Score:  score,
		})
	}

	sort.SliceStable(frames, func(i, j int) bool {
		return frames[i].Area() > frames[j].Area()
	})
	return frames
}

// FindBorder looks for a frame whose bounds are within slack pixels of want
// on every side.
//
// want is usually the rectangle from imaging.BorderRect. The edge map
// marks the pixel left of or above each step, so a contour can sit one pixel
// outside the painted stroke; a slack of 2 absorbs that. Frames scoring below 0.9 are ignored.
func FindBorder(img image.Image, want image.Rectangle, slack int) (Frame, bool) {
	minArea := (want.Dx() - 2*slack) * (want.Dy() - 2*slack)
	for _, f := range DetectFrames(img, minArea, 0.9) {
		if near(f.Bounds.Min.X, want.Min.X, slack) &&
			near(f.Bounds.Min.Y, want.Min.Y, slack) &&
			near(f.Bounds.Max.X, want.Max.X, slack) &&
			near(f.Bounds.Max.Y, want.Max.Y, slack) {
			return f, true
		}
	}
	return Frame{}, false
}

func near(a, b, slack int) bool {
	d := a - b
	return d >= -slack && d <= slack
}

// detectEdges marks pixels whose gray level steps by more than EdgeThreshold
// toward the right or lower neighbor. The last row and column are never
// marked.
func detectEdges(img image.Image) [][]bool {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	gray := make([][]uint8, h)
	for y := 0; y < h; y++ {
		gray[y] = make([]uint8, w)
		for x := 0; x < w; x++ {
			gray[y][x] = color.GrayModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.Gray).Y
		}
	}

	edges := make([][]bool, h)
	for y := 0; y < h; y++ {
		edges[y] = make([]bool, w)
		if y == h-1 {
			continue
		}
		for x := 0; x < w-1; x++ {
			c := float64(gray[y][x])
			dx := math.Abs(c - float64(gray[y][x+1]))
			dy := math.Abs(c - float64(gray[y+1][x]))
			edges[y][x] = dx > EdgeThreshold || dy > EdgeThreshold
		}
	}
	return edges
}

// findContours groups edge pixels into 8-connected components.
func findContours(edges [][]bool) [][]image.Point {
	h := len(edges)
	if h == 0 {
		return nil
	}
	w := len(edges[0])
	visited := make([][]bool, h)
	for y := range visited {
		visited[y] = make([]bool, w)
	}

	var contours [][]image.Point
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !edges[y][x] || visited[y][x] {
				continue
			}
			contour := floodFill(edges, visited, image.Pt(x, y))
			if len(contour) >= minContour {
				contours = append(contours, contour)
			}
		}
	}
	return contours
}

// floodFill collects the component containing start with an explicit stack.
func floodFill(edges, visited [][]bool, start image.Point) []image.Point {
	h, w := len(edges), len(edges[0])
	var contour []image.Point
	stack := []image.Point{start}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.X < 0 || p.X >= w || p.Y < 0 || p.Y >= h {
			continue
		}
		if visited[p.Y][p.X] || !edges[p.Y][p.X] {
			continue
		}
		visited[p.Y][p.X] = true
		contour = append(contour, p)

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx != 0 || dy != 0 {
					stack = append(stack, image.Pt(p.X+dx, p.Y+dy))
				}
			}
		}
	}
	return contour
}

// contourBounds returns the smallest rectangle containing every point.
func contourBounds(contour []image.Point) image.Rectangle {
	r := image.Rectangle{Min: contour[0], Max: contour[0].Add(image.Pt(1, 1))}
	for _, p := range contour[1:] {
		r = r.Union(image.Rectangle{Min: p, Max: p.Add(image.Pt(1, 1))})
	}
	return r
}

// strokeColor samples the midpoint of the frame's top edge one pixel in,
// which lands on the stroke for edges found on the outside of a border.
func strokeColor(img image.Image, box image.Rectangle) string {
	p := image.Pt((box.Min.X+box.Max.X)/2, box.Min.Y+1)
	if !p.In(img.Bounds()) {
		p = box.Min
	}
	return imaging.Hex(img.At(p.X, p.Y))
}
