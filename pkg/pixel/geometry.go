package pixel

// Rotate90 returns b rotated by a quarter turn.
func (b *Buffer) Rotate90(clockwise bool) *Buffer {
	out, _ := New(b.Height, b.Width, b.Channels)
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			var nx, ny int
			if clockwise {
				nx, ny = b.Height-1-y, x
			} else {
				nx, ny = y, b.Width-1-x
			}
			copy(out.Pixel(nx, ny), b.Pixel(x, y))
		}
	}

	return out
}

// PadLeft returns b with n columns of c prepended.
func (b *Buffer) PadLeft(n int, c Color) *Buffer {
	if n <= 0 {
		return b.Clone()
	}
	out, _ := New(b.Width+n, b.Height, b.Channels)
	out.Fill(c)
	skip := n * b.Channels
	for y := 0; y < b.Height; y++ {
		copy(out.Row(y)[skip:], b.Row(y))
	}

	return out
}

// WrapRows returns b with one extra row on top and bottom: the top row
// repeats the last row of b and the bottom row repeats the first. Rows of
// a polar buffer index angle, so this makes 0 and 2π neighbours.
func (b *Buffer) WrapRows() *Buffer {
	out, _ := New(b.Width, b.Height+2, b.Channels)
	copy(out.Row(0), b.Row(b.Height-1))
	copy(out.Pix[out.Stride:], b.Pix)
	copy(out.Row(out.Height-1), b.Row(0))

	return out
}
