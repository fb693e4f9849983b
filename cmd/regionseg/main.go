package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/pixelgrove/region-tools/internal/config"
	"github.com/pixelgrove/region-tools/internal/imaging"
	"github.com/pixelgrove/region-tools/internal/segment"
	"github.com/pixelgrove/region-tools/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version, --help and the serve subcommand before flag parsing
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("regionseg %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printUsage()
			return
		case "serve":
			serve()
			return
		}
	}

	// Keep stdout clean for -stats JSON output
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	if err := run(os.Args[1:]); err != nil {
		log.Fatalf("regionseg: %v", err)
	}
}

func printUsage() {
	fmt.Println("regionseg - region-growing image segmentation")
	fmt.Println()
	fmt.Println("Usage: regionseg [options] <image> [<threshold>]")
	fmt.Println("       (the threshold may come from a -config file instead)")
	fmt.Println("       regionseg serve")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -seeds \"x,y;x,y;...\"  Grow only from these seed points (row,column)")
	fmt.Println("  -mode fixed|adaptive   Similarity rule (default fixed; seeded runs default to adaptive)")
	fmt.Println("  -out path              Output image path, .png or .jpg (default segmented.png)")
	fmt.Println("  -stats                 Print per-region statistics as JSON to stdout")
	fmt.Println("  -config path           YAML configuration file; command-line flags win")
	fmt.Println("  -rect x1,y1,x2,y2      Crop to this rectangle before segmenting")
	fmt.Println("  -scale factor          Resize by this factor before segmenting")
	fmt.Println("  -blur sigma            Gaussian blur before segmenting")
	fmt.Println("  --version, -v          Print version information")
	fmt.Println("  --help, -h             Print this help message")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  REGIONSEG_LOG_LEVEL=debug    Enable debug logging")
	fmt.Println()
	fmt.Println("The serve subcommand runs the MCP tool server over stdin/stdout.")
}

func serve() {
	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	if os.Getenv("REGIONSEG_LOG_LEVEL") == "debug" {
		log.Printf("Region tools MCP server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	srv := server.New()
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("regionseg", flag.ExitOnError)
	fs.Usage = printUsage

	configPath := fs.String("config", "", "YAML configuration file")
	modeFlag := fs.String("mode", "", "similarity rule: fixed or adaptive")
	seedsFlag := fs.String("seeds", "", "seed coordinates \"x,y;x,y;...\"")
	outFlag := fs.String("out", "", "output image path")
	statsFlag := fs.Bool("stats", false, "print region statistics as JSON")
	rectFlag := fs.String("rect", "", "crop rectangle \"x1,y1,x2,y2\"")
	scaleFlag := fs.Float64("scale", 0, "resize factor")
	blurFlag := fs.Float64("blur", 0, "gaussian blur sigma")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 || fs.NArg() > 2 {
		fs.Usage()
		return fmt.Errorf("expected <image> [<threshold>], got %d arguments", fs.NArg())
	}
	imagePath := fs.Arg(0)

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	// The threshold comes from the positional argument or the config file;
	// the positional form wins when both are present.
	if fs.NArg() == 2 {
		threshold, err := strconv.ParseFloat(fs.Arg(1), 64)
		if err != nil {
			return fmt.Errorf("invalid threshold %q: %w", fs.Arg(1), err)
		}
		cfg.Segmentation.Threshold = threshold
	} else if *configPath == "" {
		fs.Usage()
		return fmt.Errorf("threshold required unless -config supplies one")
	}

	// Command-line flags override file values
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if set["mode"] {
		cfg.Segmentation.Mode = *modeFlag
	}
	if set["seeds"] {
		seeds, err := parseSeeds(*seedsFlag)
		if err != nil {
			return err
		}
		cfg.Segmentation.Seeds = seeds
		// Seeded runs default to the adaptive rule unless -mode says otherwise
		if !set["mode"] {
			cfg.Segmentation.Mode = "adaptive"
		}
	}
	if set["out"] {
		cfg.Output.Path = *outFlag
	}
	if set["stats"] {
		cfg.Output.Stats = *statsFlag
	}
	if set["scale"] {
		cfg.Preprocess.Scale = *scaleFlag
	}
	if set["blur"] {
		cfg.Preprocess.BlurSigma = *blurFlag
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	var crop *imaging.Rect
	switch {
	case *rectFlag != "":
		crop, err = parseRect(*rectFlag)
		if err != nil {
			return err
		}
	case cfg.Preprocess.Crop != nil:
		c := cfg.Preprocess.Crop
		crop = &imaging.Rect{X1: c.X1, Y1: c.Y1, X2: c.X2, Y2: c.Y2}
	}

	mode := segment.ModeFixed
	if cfg.Segmentation.Mode == "adaptive" {
		mode = segment.ModeAdaptive
	}
	if mode == segment.ModeAdaptive && len(cfg.Segmentation.Seeds) == 0 {
		return fmt.Errorf("adaptive mode requires -seeds")
	}

	debug := os.Getenv("REGIONSEG_LOG_LEVEL") == "debug"

	cache := imaging.NewImageCache()
	img, err := cache.Load(imagePath)
	if err != nil {
		return err
	}

	img, err = imaging.Prepare(img, imaging.PrepareOptions{
		Crop:      crop,
		Scale:     cfg.Preprocess.Scale,
		BlurSigma: cfg.Preprocess.BlurSigma,
	})
	if err != nil {
		return err
	}

	grid, err := imaging.GridFromImage(img)
	if err != nil {
		return err
	}
	if debug {
		log.Printf("segmenting %s: %dx%d, threshold %v, mode %s",
			imagePath, grid.Width(), grid.Height(), cfg.Segmentation.Threshold, mode)
	}

	grower, err := segment.NewGrower(grid, cfg.Segmentation.Threshold, mode)
	if err != nil {
		return err
	}

	var labels *segment.LabelMap
	if len(cfg.Segmentation.Seeds) > 0 {
		seeds := make([]segment.Seed, len(cfg.Segmentation.Seeds))
		for i, s := range cfg.Segmentation.Seeds {
			seeds[i] = segment.Seed{X: s.X, Y: s.Y}
		}
		labels, err = grower.GrowFromSeeds(seeds)
		if err != nil {
			return err
		}
	} else {
		labels = grower.GrowAll()
	}

	if debug {
		log.Printf("grew %d regions in %d iterations, %d/%d pixels labeled (complete=%v)",
			grower.Regions(), grower.Iterations(), labels.CountLabeled(),
			grid.Height()*grid.Width(), grower.Complete())
	}
	if !grower.Complete() {
		log.Printf("partial labeling: %d of %d pixels assigned",
			labels.CountLabeled(), grid.Height()*grid.Width())
	}

	if err := imaging.SaveImage(cfg.Output.Path, segment.Colorize(labels)); err != nil {
		return err
	}

	if cfg.Output.Stats {
		result, err := segment.Stats(grid, labels)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return err
		}
	}

	return nil
}

// parseSeeds parses "x,y;x,y;..." in matrix coordinates (row,column).
func parseSeeds(s string) ([]config.Seed, error) {
	var seeds []config.Seed
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		coords := strings.Split(part, ",")
		if len(coords) != 2 {
			return nil, fmt.Errorf("invalid seed %q: expected \"x,y\"", part)
		}
		x, err := strconv.Atoi(strings.TrimSpace(coords[0]))
		if err != nil {
			return nil, fmt.Errorf("invalid seed %q: %w", part, err)
		}
		y, err := strconv.Atoi(strings.TrimSpace(coords[1]))
		if err != nil {
			return nil, fmt.Errorf("invalid seed %q: %w", part, err)
		}
		seeds = append(seeds, config.Seed{X: x, Y: y})
	}
	if len(seeds) == 0 {
		return nil, fmt.Errorf("no seeds in %q", s)
	}
	return seeds, nil
}

// parseRect parses "x1,y1,x2,y2" in image coordinates.
func parseRect(s string) (*imaging.Rect, error) {
	coords := strings.Split(s, ",")
	if len(coords) != 4 {
		return nil, fmt.Errorf("invalid rect %q: expected \"x1,y1,x2,y2\"", s)
	}
	vals := make([]int, 4)
	for i, c := range coords {
		v, err := strconv.Atoi(strings.TrimSpace(c))
		if err != nil {
			return nil, fmt.Errorf("invalid rect %q: %w", s, err)
		}
		vals[i] = v
	}
	return &imaging.Rect{X1: vals[0], Y1: vals[1], X2: vals[2], Y2: vals[3]}, nil
}
