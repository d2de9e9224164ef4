package rainbow

import (
	"image"
	"image/color"

	"rainbow-disk/pkg/pixel"
)

// RowMeans reduces img to one sample per row: the per-channel mean of
// every pixel in that row, rounded to nearest.
func RowMeans(img image.Image, channels int) []pixel.Color {
	r := img.Bounds()
	out := make([]pixel.Color, r.Dy())
	if r.Dx() == 0 {
		for i := range out {
			out[i] = make(pixel.Color, channels)
		}
		return out
	}

	var sum [4]uint64
	for y := r.Min.Y; y < r.Max.Y; y++ {
		sum = [4]uint64{}
		switch src := img.(type) {
		case *image.RGBA:
			row := src.Pix[src.PixOffset(r.Min.X, y):src.PixOffset(r.Max.X, y)]
			for i := 0; i < len(row); i += 4 {
				sum[0] += uint64(row[i])
				sum[1] += uint64(row[i+1])
				sum[2] += uint64(row[i+2])
				sum[3] += uint64(row[i+3])
			}
		case *image.Gray:
			row := src.Pix[src.PixOffset(r.Min.X, y):src.PixOffset(r.Max.X, y)]
			for _, v := range row {
				sum[0] += uint64(v)
				sum[1] += uint64(v)
				sum[2] += uint64(v)
				sum[3] += 0xff
			}
		default:
			for x := r.Min.X; x < r.Max.X; x++ {
				c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
				sum[0] += uint64(c.R)
				sum[1] += uint64(c.G)
				sum[2] += uint64(c.B)
				sum[3] += uint64(c.A)
			}
		}

		n := uint64(r.Dx())
		mean := pixel.Color{
			uint8((sum[0] + n/2) / n),
			uint8((sum[1] + n/2) / n),
			uint8((sum[2] + n/2) / n),
			uint8((sum[3] + n/2) / n),
		}
		out[y-r.Min.Y] = toChannels(mean, channels)
	}

	return out
}

func toChannels(c pixel.Color, channels int) pixel.Color {
	if channels == 1 {
		g := color.GrayModel.Convert(color.NRGBA{R: c[0], G: c[1], B: c[2], A: 0xff}).(color.Gray)
		return pixel.Color{g.Y}
	}
	return c[:channels]
}

func writeColumn(strip *pixel.Buffer, col int, frame image.Image) {
	for y, c := range RowMeans(frame, strip.Channels) {
		strip.SetPixel(col, y, c)
	}
}
