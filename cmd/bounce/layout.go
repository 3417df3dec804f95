package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/1broseidon/bounce/internal/config"
	"github.com/1broseidon/bounce/internal/ipc"
	"github.com/1broseidon/bounce/internal/tiling"
)

const (
	maxLayoutCount = 64
	sketchCols     = 64
	sketchRows     = 20
)

// regionGlyphs label regions in the sketch; the 63rd window onward reuses '#'.
const regionGlyphs = "123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

type layoutPreview struct {
	Screen   tiling.Rect
	WorkArea tiling.Rect
	Regions  []tiling.Rect
	// Windows are the regions after the gap inset, as they would be placed.
	Windows []tiling.Rect
}

// MarshalJSON uses the same rect encoding as the daemon replies.
func (p layoutPreview) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Screen   ipc.Rect   `json:"screen"`
		WorkArea ipc.Rect   `json:"work_area"`
		Regions  []ipc.Rect `json:"regions"`
		Windows  []ipc.Rect `json:"windows"`
	}{
		Screen:   wireRect(p.Screen),
		WorkArea: wireRect(p.WorkArea),
		Regions:  wireRects(p.Regions),
		Windows:  wireRects(p.Windows),
	})
}

func wireRect(r tiling.Rect) ipc.Rect {
	return ipc.Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}

func wireRects(rs []tiling.Rect) []ipc.Rect {
	out := make([]ipc.Rect, len(rs))
	for i, r := range rs {
		out[i] = wireRect(r)
	}
	return out
}

func newLayoutCmd(opts *rootOptions) *cobra.Command {
	var width, height int

	cmd := &cobra.Command{
		Use:   "layout <count>",
		Short: "Preview the golden-ratio layout for a number of windows",
		Long: `Compute where count windows would be placed on a screen of the given
size using the configured padding, tile region, gap and minimum region size.
Nothing is moved and the daemon is not contacted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			count, err := strconv.Atoi(args[0])
			if err != nil || count < 1 || count > maxLayoutCount {
				return fmt.Errorf("count must be a number between 1 and %d", maxLayoutCount)
			}
			if width < 1 || height < 1 {
				return fmt.Errorf("screen size must be positive, got %dx%d", width, height)
			}

			res, err := loadConfig(opts.configPath)
			if err != nil {
				return err
			}

			preview := computePreview(res.Config, tiling.Rect{Width: width, Height: height}, count)
			out := cmd.OutOrStdout()
			if opts.wantJSON(out) {
				return writeJSON(out, preview)
			}
			printPreview(out, preview)
			return nil
		},
	}

	cmd.Flags().IntVar(&width, "width", 1920, "screen width in pixels")
	cmd.Flags().IntVar(&height, "height", 1080, "screen height in pixels")
	return cmd
}

func computePreview(cfg *config.Config, screen tiling.Rect, count int) layoutPreview {
	area := screen
	if padded, ok := tiling.ApplyPadding(area, cfg.ScreenPadding); ok {
		area = padded
	}
	area = tiling.ApplyRegion(area, cfg.TileRegion)

	regions := tiling.FibonacciPositions(count, area, cfg.MinRegionSize)
	windows := make([]tiling.Rect, len(regions))
	for i, r := range regions {
		windows[i] = r.Inset(cfg.GapSize)
	}
	return layoutPreview{
		Screen:   screen,
		WorkArea: area,
		Regions:  regions,
		Windows:  windows,
	}
}

func printPreview(w io.Writer, p layoutPreview) {
	fmt.Fprintf(w, "work area: %s\n\n", p.WorkArea)
	for _, line := range sketch(p.WorkArea, p.Regions, sketchCols, sketchRows) {
		fmt.Fprintln(w, line)
	}
	fmt.Fprintln(w)
	for i, r := range p.Windows {
		fmt.Fprintf(w, "%c  %s\n", glyph(i), r)
	}
}

// sketch draws regions inside area on a cols x rows character grid. Each
// cell shows the last region containing its centre; '.' marks uncovered
// cells. Stacked regions therefore show only the topmost window.
func sketch(area tiling.Rect, regions []tiling.Rect, cols, rows int) []string {
	if cols < 1 || rows < 1 || area.Empty() {
		return nil
	}
	lines := make([]string, rows)
	buf := make([]byte, cols)
	for row := 0; row < rows; row++ {
		y := area.Y + (2*row+1)*area.Height/(2*rows)
		for col := 0; col < cols; col++ {
			x := area.X + (2*col+1)*area.Width/(2*cols)
			buf[col] = '.'
			for i, r := range regions {
				if r.ContainsPoint(tiling.Point{X: x, Y: y}) {
					buf[col] = glyph(i)
				}
			}
		}
		lines[row] = string(buf)
	}
	return lines
}

func glyph(i int) byte {
	if i < len(regionGlyphs) {
		return regionGlyphs[i]
	}
	return '#'
}
