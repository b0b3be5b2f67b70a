package ui2d

// DrawList is one frame of solid-color triangles in screen pixels, top-left
// origin. Positions holds x, y per vertex and Colors r, g, b, a.
type DrawList struct {
	Positions []float32
	Colors    []float32
}

// Reset empties the list and keeps its storage.
func (l *DrawList) Reset() {
	l.Positions = l.Positions[:0]
	l.Colors = l.Colors[:0]
}

// Len returns the vertex count.
func (l *DrawList) Len() int {
	return len(l.Positions) / 2
}

// AddRect adds a filled rectangle.
func (l *DrawList) AddRect(x, y, w, h float32, c Color) {
	if w <= 0 || h <= 0 || c.A == 0 {
		return
	}
	// Two triangles forming a quad
	l.Positions = append(l.Positions,
		x, y,
		x+w, y,
		x+w, y+h,
		x, y,
		x+w, y+h,
		x, y+h,
	)
	for i := 0; i < 6; i++ {
		l.Colors = append(l.Colors, c.R, c.G, c.B, c.A)
	}
}

// AddRectOutline adds a rectangle outline.
func (l *DrawList) AddRectOutline(x, y, w, h, thickness float32, c Color) {
	l.AddRect(x, y, w, thickness, c)
	l.AddRect(x, y+h-thickness, w, thickness, c)
	l.AddRect(x, y+thickness, thickness, h-thickness*2, c)
	l.AddRect(x+w-thickness, y+thickness, thickness, h-thickness*2, c)
}

// AddPanel adds a panel with border.
func (l *DrawList) AddPanel(x, y, w, h float32, bg, border Color) {
	l.AddRect(x, y, w, h, bg)
	l.AddRectOutline(x, y, w, h, 1, border)
}

// AddText adds a single line of text. Each horizontal run of lit glyph
// pixels becomes one quad.
func (l *DrawList) AddText(x, y float32, text string, scale float32, c Color) {
	curX := x
	for _, r := range text {
		g := glyph(r)
		for row, bits := range g {
			py := y + float32(row)*scale
			for col := 0; col < GlyphWidth; {
				if bits&(1<<(GlyphWidth-1-col)) == 0 {
					col++
					continue
				}
				start := col
				for col < GlyphWidth && bits&(1<<(GlyphWidth-1-col)) != 0 {
					col++
				}
				l.AddRect(curX+float32(start)*scale, py, float32(col-start)*scale, scale, c)
			}
		}
		curX += GlyphAdvance * scale
	}
}
