// Package memecard renders a generated meme as a PNG card.
package memecard

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/pitchslap/pitchslap/internal/pitch"
)

// Cards are drawn at 1/scale resolution and scaled up so the bitmap font
// stays legible.
const scale = 3

const (
	minSide = 150
	maxSide = 2400
)

type layout int

const (
	layoutSingle layout = iota
	layoutSideBySide
	layoutVerticalStack
	layoutThreePanel
)

type template struct {
	name   string
	layout layout
	width  int
	height int
}

var templates = map[string]template{
	pitch.TemplateDrake:               {"Drake Format", layoutSideBySide, 600, 600},
	pitch.TemplateGalaxyBrain:         {"Galaxy Brain", layoutVerticalStack, 600, 800},
	pitch.TemplateSpongebobMocking:    {"SpongeBob Mocking", layoutSingle, 600, 600},
	pitch.TemplateThisIsFine:          {"This is Fine", layoutSingle, 600, 400},
	pitch.TemplateWojakMask:           {"Wojak Crying/Smiling Mask", layoutSingle, 600, 600},
	pitch.TemplateDistractedBoyfriend: {"Distracted Boyfriend", layoutThreePanel, 600, 400},
	pitch.TemplateConfusedMathLady:    {"Confused Math Lady", layoutSingle, 600, 400},
}

var (
	white  = color.RGBA{0xff, 0xff, 0xff, 0xff}
	ink    = color.RGBA{0x11, 0x18, 0x27, 0xff}
	gray   = color.RGBA{0x6b, 0x72, 0x80, 0xff}
	amber  = color.RGBA{0xfb, 0xbf, 0x24, 0xff}
	indigo = color.RGBA{0x4f, 0x46, 0xe5, 0xff}
	green  = color.RGBA{0x05, 0x96, 0x69, 0xff}
	red    = color.RGBA{0xef, 0x44, 0x44, 0xff}
	blue   = color.RGBA{0x3b, 0x82, 0xf6, 0xff}
	teal   = color.RGBA{0x10, 0xb9, 0x81, 0xff}
)

// ErrSize is returned for dimensions outside the supported range.
var ErrSize = errors.New("meme card size out of range")

// Options control the output size. Zero values use the template's own size.
type Options struct {
	Width  int
	Height int
}

// TemplateName returns the display name of a template id, or "Custom".
func TemplateName(id string) string {
	if t, ok := templates[id]; ok {
		return t.name
	}
	return "Custom"
}

// Render draws the meme. Unknown templates use the Drake layout.
func Render(m pitch.Meme, opts Options) (image.Image, error) {
	t, ok := templates[m.Template]
	if !ok {
		t = templates[pitch.TemplateDrake]
	}

	width, height := opts.Width, opts.Height
	if width == 0 {
		width = t.width
	}
	if height == 0 {
		height = t.height
	}
	if width < minSide || height < minSide || width > maxSide || height > maxSide {
		return nil, ErrSize
	}

	top, bottom := m.TopText, m.BottomText
	if top == "" {
		top = m.Caption
	}

	small := image.NewRGBA(image.Rect(0, 0, width/scale, height/scale))
	c := canvas{img: small}
	c.fill(small.Bounds(), white)

	body := c.banner(t.name)
	switch t.layout {
	case layoutSideBySide:
		c.sideBySide(body, top, bottom)
	case layoutVerticalStack:
		c.verticalStack(body, top, bottom)
	case layoutThreePanel:
		c.threePanel(body, top, bottom)
	default:
		c.single(body, top, bottom)
	}

	out := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.NearestNeighbor.Scale(out, out.Bounds(), small, small.Bounds(), draw.Src, nil)
	return out, nil
}

// WritePNG renders the meme and encodes it to w.
func WritePNG(w io.Writer, m pitch.Meme, opts Options) error {
	img, err := Render(m, opts)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

type canvas struct {
	img *image.RGBA
}

var face = basicfont.Face7x13

const lineHeight = 14

func (c canvas) fill(r image.Rectangle, col color.Color) {
	draw.Draw(c.img, r, image.NewUniform(col), image.Point{}, draw.Src)
}

// banner draws the template name strip and returns the remaining area.
func (c canvas) banner(name string) image.Rectangle {
	b := c.img.Bounds()
	strip := image.Rect(b.Min.X, b.Min.Y, b.Max.X, b.Min.Y+lineHeight+4)
	c.fill(strip, amber)
	c.text(strip, []string{strings.ToUpper(name)}, ink, false)
	return image.Rect(b.Min.X, strip.Max.Y, b.Max.X, b.Max.Y)
}

func (c canvas) sideBySide(r image.Rectangle, top, bottom string) {
	mid := r.Min.Y + r.Dy()/2
	panel := r.Min.X + r.Dx()/3

	c.fill(image.Rect(r.Min.X, r.Min.Y, panel, mid), indigo)
	c.fill(image.Rect(r.Min.X, mid, panel, r.Max.Y), green)
	c.fill(image.Rect(panel, mid, r.Max.X, mid+1), gray)

	c.text(image.Rect(panel, r.Min.Y, r.Max.X, mid), wrap(orDefault(top, "Old way"), r.Max.X-panel), ink, true)
	c.text(image.Rect(panel, mid, r.Max.X, r.Max.Y), wrap(orDefault(bottom, "New way"), r.Max.X-panel), ink, true)
}

func (c canvas) verticalStack(r image.Rectangle, top, bottom string) {
	const bands = 4
	h := r.Dy() / bands
	for i := 0; i < bands; i++ {
		shade := uint8(40 + i*40)
		band := image.Rect(r.Min.X, r.Min.Y+i*h, r.Max.X, r.Min.Y+(i+1)*h)
		if i == bands-1 {
			band.Max.Y = r.Max.Y
		}
		c.fill(band, color.RGBA{shade / 2, shade / 2, shade, 0xff})
	}
	c.text(image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+h), wrap(top, r.Dx()), white, true)
	c.text(image.Rect(r.Min.X, r.Max.Y-h, r.Max.X, r.Max.Y), wrap(bottom, r.Dx()), amber, true)
}

func (c canvas) threePanel(r image.Rectangle, top, bottom string) {
	w := r.Dx() / 3
	for i, col := range []color.Color{red, blue, teal} {
		c.fill(image.Rect(r.Min.X+i*w, r.Min.Y, r.Min.X+(i+1)*w, r.Max.Y), col)
	}
	c.caption(r, top, bottom)
}

func (c canvas) single(r image.Rectangle, top, bottom string) {
	c.fill(r, gray)
	c.caption(r, top, bottom)
}

// caption draws top text at the top of r and bottom text at the bottom.
func (c canvas) caption(r image.Rectangle, top, bottom string) {
	third := r.Dy() / 3
	c.text(image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+third), wrap(top, r.Dx()), white, true)
	if bottom != "" {
		c.text(image.Rect(r.Min.X, r.Max.Y-third, r.Max.X, r.Max.Y), wrap(bottom, r.Dx()), white, true)
	}
}

// text draws lines centered in r, clipping what does not fit.
func (c canvas) text(r image.Rectangle, lines []string, col color.Color, upper bool) {
	if fit := r.Dy() / lineHeight; len(lines) > fit {
		lines = lines[:fit]
	}
	y := r.Min.Y + (r.Dy()-len(lines)*lineHeight)/2 + face.Ascent
	d := font.Drawer{Dst: c.img, Src: image.NewUniform(col), Face: face}
	for _, line := range lines {
		if upper {
			line = strings.ToUpper(line)
		}
		x := r.Min.X + (r.Dx()-d.MeasureString(line).Ceil())/2
		d.Dot = fixed.P(x, y)
		d.DrawString(line)
		y += lineHeight
	}
}

// wrap breaks text into lines no wider than width pixels less a margin.
// Words longer than a line are split.
func wrap(text string, width int) []string {
	limit := (width - 6) / face.Advance
	if limit < 1 {
		limit = 1
	}

	var lines []string
	var current string
	for _, word := range strings.Fields(text) {
		for len([]rune(word)) > limit {
			if current != "" {
				lines = append(lines, current)
				current = ""
			}
			runes := []rune(word)
			lines = append(lines, string(runes[:limit]))
			word = string(runes[limit:])
		}
		switch {
		case current == "":
			current = word
		case len([]rune(current))+1+len([]rune(word)) <= limit:
			current += " " + word
		default:
			lines = append(lines, current)
			current = word
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
