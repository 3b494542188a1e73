package main

import (
	"strconv"

	"github.com/pterm/pterm"

	"github.com/gogpu/fonts"
)

func printFont(f *fonts.Font) {
	pterm.Info.Printf("%s (id %v, %d glyphs, fingerprint %s, refs %d)\n",
		f.FullName(), f.ID(), f.GlyphCount(), f.Fingerprint().Short(), f.RefCount())
}

func printGlyphs(glyphs []fonts.GlyphPosition) {
	data := [][]string{{"#", "glyph", "cluster", "x_advance", "y_advance", "x_offset", "y_offset"}}
	for i, g := range glyphs {
		data = append(data, []string{
			strconv.Itoa(i),
			strconv.FormatUint(uint64(g.ID), 10),
			strconv.FormatUint(uint64(g.Cluster), 10),
			strconv.Itoa(int(g.XAdvance)),
			strconv.Itoa(int(g.YAdvance)),
			strconv.Itoa(int(g.XOffset)),
			strconv.Itoa(int(g.YOffset)),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func printStats(fs *fonts.Fonts) {
	s := fs.Stats()
	pterm.Info.Printf("%d fonts, %d buffers\n", s.Fonts, s.Buffers)
	if s.Fonts == 0 {
		return
	}
	data := [][]string{{"id", "name", "refs", "fingerprint"}}
	for info := range fs.LiveFonts() {
		data = append(data, []string{info.ID.String(), info.FullName, strconv.Itoa(info.Refs), info.Fingerprint.Short()})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
