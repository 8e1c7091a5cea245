// Command wfc-view is an interactive Ebitengine visualizer for the
// collapse engine: Space steps once, Enter runs continuously, Escape
// stops, R resets, and clicking an undecided cell forces it to its
// lowest-numbered remaining candidate tile.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"hash/fnv"
	"image/color"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"wavecollapse.dev/wfc/engine"
)

const cellSizePx = 24

type app struct {
	pattern  []rune
	pw, ph   int
	tw, th   int
	width    int
	height   int
	seed     uint64
	e        *engine.Engine[rune]
	autoRun  bool
	stepRate int
}

func newApp(pattern []rune, pw, ph, tw, th, width, height int, seed uint64) (*app, error) {
	a := &app{
		pattern:  pattern,
		pw:       pw,
		ph:       ph,
		tw:       tw,
		th:       th,
		width:    width,
		height:   height,
		seed:     seed,
		stepRate: 30,
	}
	if err := a.reset(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *app) reset() error {
	e, err := engine.New[rune](a.width, a.height)
	if err != nil {
		return err
	}
	if err := e.InitFromPattern(a.pattern, a.pw, a.ph, a.tw, a.th, a.seed); err != nil {
		return err
	}
	a.e = e
	a.autoRun = false
	return nil
}

func (a *app) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyR) {
		return a.reset()
	}
	if ebiten.IsKeyJustPressed(ebiten.KeySpace) {
		a.e.Collapse(true, nil)
	}
	if ebiten.IsKeyPressed(ebiten.KeyEnter) {
		a.autoRun = true
	}
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		a.autoRun = false
	}

	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		cx, cy := x/cellSizePx, y/cellSizePx
		if cx >= 0 && cx < a.e.Width() && cy >= 0 && cy < a.e.Height() {
			cell := a.e.Field().At(cx, cy)
			if cell.Count() > 1 {
				a.e.ForceCell(cx, cy, cell.First())
			}
		}
	}

	if a.autoRun {
		stepsPerFrame := a.stepRate / 60
		if stepsPerFrame < 1 {
			stepsPerFrame = 1
		}
		for i := 0; i < stepsPerFrame; i++ {
			if a.e.Collapse(true, nil) {
				a.autoRun = false
				break
			}
		}
	}

	return nil
}

func (a *app) Draw(screen *ebiten.Image) {
	f := a.e.Field()
	for y := 0; y < f.Height(); y++ {
		for x := 0; x < f.Width(); x++ {
			cell := f.At(x, y)
			c := cellColor(cell.Count(), len(a.e.Tiles()))
			if cell.Count() == 1 {
				c = tileColor(a.e.Tiles()[cell.First()])
			}
			vector.FillRect(screen,
				float32(x*cellSizePx), float32(y*cellSizePx),
				float32(cellSizePx-1), float32(cellSizePx-1),
				c, false)
			if cell.Count() == 1 {
				ebitenutil.DebugPrintAt(screen, string(a.e.Tiles()[cell.First()]), x*cellSizePx+8, y*cellSizePx+4)
			}
		}
	}

	status := "SPACE=step  ENTER=run  ESC=stop  R=reset  LMB=force\n"
	status += fmt.Sprintf("uncertainty=%.3f", a.e.Uncertainty())
	if a.autoRun {
		status += "  [RUNNING]"
	}
	ebitenutil.DebugPrint(screen, status)
}

func (a *app) Layout(outsideW, outsideH int) (int, int) {
	return a.width * cellSizePx, a.height * cellSizePx
}

// cellColor visualizes entropy: brighter gray for more remaining
// candidates, matching the darker-means-more-decided convention.
func cellColor(count, total int) color.Color {
	if total <= 1 {
		return color.RGBA{80, 80, 80, 255}
	}
	v := 40 + int(float64(count-1)/float64(total-1)*160.0)
	if v > 220 {
		v = 220
	}
	return color.RGBA{uint8(v), uint8(v), uint8(v), 255}
}

// tileColor derives a stable color from a tile's rune value so the same
// tile always renders the same color across a run.
func tileColor(r rune) color.Color {
	h := fnv.New32a()
	h.Write([]byte(string(r)))
	sum := h.Sum32()
	return color.RGBA{
		R: uint8(sum),
		G: uint8(sum >> 8),
		B: uint8(sum >> 16),
		A: 255,
	}
}

func loadPattern(path string) ([]rune, int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, 0, err
	}
	defer f.Close()

	var pattern []rune
	width := 0
	height := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		if width == 0 {
			width = len([]rune(line))
		} else if len([]rune(line)) != width {
			return nil, 0, 0, fmt.Errorf("line %d has length %d, want %d", height+1, len([]rune(line)), width)
		}
		pattern = append(pattern, []rune(line)...)
		height++
	}
	return pattern, width, height, scanner.Err()
}

func main() {
	patternFile := flag.String("pattern", "", "The file to load the exemplar pattern from")
	tileWidth := flag.Int("tile_width", 2, "The width of an extracted tile window")
	tileHeight := flag.Int("tile_height", 2, "The height of an extracted tile window")
	outWidth := flag.Int("width", 30, "The width of the output field in cells")
	outHeight := flag.Int("height", 20, "The height of the output field in cells")
	seed := flag.Uint64("seed", 0, "The RNG seed; 0 picks a nondeterministic one")
	flag.Parse()

	if *patternFile == "" {
		fmt.Println("Missing required -pattern flag")
		os.Exit(1)
	}

	pattern, pw, ph, err := loadPattern(*patternFile)
	if err != nil {
		fmt.Println("Error loading pattern:", err)
		os.Exit(1)
	}

	a, err := newApp(pattern, pw, ph, *tileWidth, *tileHeight, *outWidth, *outHeight, *seed)
	if err != nil {
		fmt.Println("Error creating app:", err)
		os.Exit(1)
	}

	ebiten.SetWindowTitle("wfc-view")
	ebiten.SetWindowSize(*outWidth*cellSizePx, *outHeight*cellSizePx)
	if err := ebiten.RunGame(a); err != nil {
		fmt.Println("Error running game:", err)
		os.Exit(1)
	}
}
