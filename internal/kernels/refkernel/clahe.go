package refkernel

import (
	"math"

	"paperscan/internal/imaging"
	"paperscan/internal/kernels"
)

const histBins = 256

// tileBounds returns the half-open column/row range covered by tile
// (tx, ty) of a gx x gy grid over a W x H image (spec §4.1 step 1): the
// last column/row absorbs any remainder so every pixel belongs to exactly
// one tile.
func tileBounds(tx, ty, gx, gy, w, h int) (x0, x1, y0, y1 int) {
	tw := w / gx
	th := h / gy

	x0 = tx * tw
	if tx == gx-1 {
		x1 = w
	} else {
		x1 = x0 + tw
	}

	y0 = ty * th
	if ty == gy-1 {
		y1 = h
	} else {
		y1 = y0 + th
	}

	return x0, x1, y0, y1
}

// tileMapping is the per-bin luminance remap derived from one tile's
// clipped CDF (spec §4.1 steps 2-4).
type tileMapping [histBins]byte

func buildTileHistogram(src *imaging.Gray, x0, x1, y0, y1 int) ([histBins]int, int) {
	var hist [histBins]int
	n := 0
	for y := y0; y < y1; y++ {
		row := y * src.Width
		for x := x0; x < x1; x++ {
			hist[src.Pix[row+x]]++
			n++
		}
	}
	return hist, n
}

// clipHistogram applies the clip-and-redistribute step (spec §4.1 step 3).
// L <= 0 means unclipped, matching "0 ... ⇒ unclipped" in the contract; a
// very large L is naturally unclipped because clipCount then exceeds
// every bin's count.
func clipHistogram(hist [histBins]int, n int, clipLimit float64) [histBins]int {
	if clipLimit <= 0 {
		return hist
	}

	clipCount := int(clipLimit * float64(n) / float64(histBins))
	if clipCount < 1 {
		clipCount = 1
	}

	excess := 0
	for i := 0; i < histBins; i++ {
		if hist[i] > clipCount {
			excess += hist[i] - clipCount
			hist[i] = clipCount
		}
	}

	if excess == 0 {
		return hist
	}

	evenShare := excess / histBins
	remainder := excess % histBins
	for i := 0; i < histBins; i++ {
		hist[i] += evenShare
	}
	for i := 0; i < remainder; i++ {
		hist[i]++
	}

	return hist
}

// buildMapping computes the CDF-based remap table for one tile (spec
// §4.1 step 4).
func buildMapping(hist [histBins]int, n int) tileMapping {
	var cdf [histBins]int
	running := 0
	for i := 0; i < histBins; i++ {
		running += hist[i]
		cdf[i] = running
	}

	cdfMin := 0
	for i := 0; i < histBins; i++ {
		if cdf[i] > 0 {
			cdfMin = cdf[i]
			break
		}
	}

	denom := n - cdfMin

	var mapping tileMapping
	for v := 0; v < histBins; v++ {
		if denom <= 0 {
			mapping[v] = byte(v)
			continue
		}
		scaled := float64(cdf[v]-cdfMin) / float64(denom) * 255.0
		mapping[v] = clampRoundByte(scaled)
	}
	return mapping
}

func clampRoundByte(v float64) byte {
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	return byte(roundHalfAwayFromZero(v))
}

func roundHalfAwayFromZero(v float64) float64 {
	if v >= 0 {
		return math.Floor(v + 0.5)
	}
	return math.Ceil(v - 0.5)
}

// Clahe implements spec §4.1 end to end.
func Clahe(src *imaging.Gray, cfg kernels.ClaheConfig) (*imaging.Gray, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	gx, gy := cfg.TileGrid.GX, cfg.TileGrid.GY
	if gx < 1 || gy < 1 {
		gx, gy = 1, 1
	}

	w, h := src.Width, src.Height
	mappings := make([][]tileMapping, gy)
	for ty := 0; ty < gy; ty++ {
		mappings[ty] = make([]tileMapping, gx)
		for tx := 0; tx < gx; tx++ {
			x0, x1, y0, y1 := tileBounds(tx, ty, gx, gy, w, h)
			hist, n := buildTileHistogram(src, x0, x1, y0, y1)
			hist = clipHistogram(hist, n, cfg.ClipLimit)
			mappings[ty][tx] = buildMapping(hist, n)
		}
	}

	tw := w / gx
	if tw < 1 {
		tw = 1
	}
	th := h / gy
	if th < 1 {
		th = 1
	}

	out := imaging.New(w, h)
	for y := 0; y < h; y++ {
		fy := float64(y)/float64(th) - 0.5
		fy = clampFloat(fy, 0, float64(gy-1))
		ty0 := int(math.Floor(fy))
		ty1 := minInt(ty0+1, gy-1)
		wy := fy - float64(ty0)

		for x := 0; x < w; x++ {
			fx := float64(x)/float64(tw) - 0.5
			fx = clampFloat(fx, 0, float64(gx-1))
			tx0 := int(math.Floor(fx))
			tx1 := minInt(tx0+1, gx-1)
			wx := fx - float64(tx0)

			v := src.Pix[y*w+x]

			m00 := float64(mappings[ty0][tx0][v])
			m01 := float64(mappings[ty0][tx1][v])
			m10 := float64(mappings[ty1][tx0][v])
			m11 := float64(mappings[ty1][tx1][v])

			top := m00*(1-wx) + m01*wx
			bottom := m10*(1-wx) + m11*wx
			blended := top*(1-wy) + bottom*wy

			out.Pix[y*w+x] = clampRoundByte(blended)
		}
	}

	return out, nil
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
