package render

import "image/color"

var (
	Black  = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Red    = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	Green  = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	Orange = color.RGBA{R: 255, G: 128, B: 0, A: 255}
)

// posePalette holds the 20 colors used to paint skeletons of tracked
// poses. A pose with tracking identity id is painted with entry id mod 20,
// so colors repeat once more than 20 bodies are in frame.
var posePalette = []color.RGBA{
	{R: 255, G: 128, B: 0, A: 255},
	{R: 255, G: 153, B: 51, A: 255},
	{R: 255, G: 178, B: 102, A: 255},
	{R: 230, G: 230, B: 0, A: 255},
	{R: 255, G: 153, B: 255, A: 255},
	{R: 153, G: 204, B: 255, A: 255},
	{R: 255, G: 102, B: 255, A: 255},
	{R: 255, G: 51, B: 255, A: 255},
	{R: 102, G: 178, B: 255, A: 255},
	{R: 51, G: 153, B: 255, A: 255},
	{R: 255, G: 153, B: 153, A: 255},
	{R: 255, G: 102, B: 102, A: 255},
	{R: 255, G: 51, B: 51, A: 255},
	{R: 153, G: 255, B: 153, A: 255},
	{R: 102, G: 255, B: 102, A: 255},
	{R: 51, G: 255, B: 51, A: 255},
	{R: 0, G: 255, B: 0, A: 255},
	{R: 0, G: 0, B: 255, A: 255},
	{R: 255, G: 0, B: 0, A: 255},
	{R: 255, G: 255, B: 255, A: 255},
}
