// Command wfc-cli collapses a rune exemplar loaded from a text file into
// an output grid of arbitrary size, printing the result to stdout.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	"go.uber.org/zap"

	"wavecollapse.dev/wfc/engine"
)

func main() {
	patternFile := flag.String("pattern", "", "The file to load the exemplar pattern from")
	tileWidth := flag.Int("tile_width", 2, "The width of an extracted tile window")
	tileHeight := flag.Int("tile_height", 2, "The height of an extracted tile window")
	outWidth := flag.Int("width", 20, "The width of the output field")
	outHeight := flag.Int("height", 20, "The height of the output field")
	seed := flag.Uint64("seed", 0, "The RNG seed; 0 picks a nondeterministic one")

	watch := flag.Bool("watch", false, "Show a live progress view while collapsing")
	verbose := flag.Bool("verbose", false, "Enable debug logging")

	profile := flag.Bool("profile", false, "Profile the collapse")
	profileFile := flag.String("profile-file", "cpu.pprof", "The file to write the CPU profile to")

	flag.Parse()

	if *patternFile == "" {
		fmt.Println("Missing required -pattern flag")
		os.Exit(1)
	}

	if *verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			fmt.Println("Error creating logger:", err)
			os.Exit(1)
		}
		engine.SetLogger(l)
	}

	pattern, pw, ph, err := loadPattern(*patternFile)
	if err != nil {
		fmt.Println("Error loading pattern:", err)
		os.Exit(1)
	}

	if *profile {
		f, err := os.Create(*profileFile)
		if err != nil {
			fmt.Println("Error creating profile file:", err)
			os.Exit(1)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Println("Error starting CPU profile:", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	e, err := engine.New[rune](*outWidth, *outHeight)
	if err != nil {
		fmt.Println("Error creating engine:", err)
		os.Exit(1)
	}
	if err := e.InitFromPattern(pattern, pw, ph, *tileWidth, *tileHeight, *seed); err != nil {
		fmt.Println("Error initializing engine:", err)
		os.Exit(1)
	}

	fmt.Println("Tiles learned:", len(e.Tiles()))
	fmt.Println("Seed:", e.Seed())

	ctx := context.Background()

	if *watch {
		if err := runWatch(ctx, e); err != nil {
			fmt.Println("Error running watch view:", err)
			os.Exit(1)
		}
	} else {
		start := time.Now()
		e.Collapse(false, nil)
		fmt.Println("Collapsed in", time.Since(start))
	}

	fmt.Println("--------------------------------")
	fmt.Println(e.Grid().Repr())
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
	if err := scanner.Err(); err != nil {
		return nil, 0, 0, err
	}
	if height == 0 {
		return nil, 0, 0, fmt.Errorf("pattern file %q is empty", path)
	}
	return pattern, width, height, nil
}
