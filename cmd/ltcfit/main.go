package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/lmittmann/tint"

	"ltcfit/brdf"
	"ltcfit/ltc"
)

var args = struct {
	brdf        string
	size        int
	samples     int
	minAlpha    float64
	compression int
	writeC      bool
	writeJS     bool
	writeDDS    bool
	verbose     bool
}{
	brdf:        "ggx",
	size:        64,
	samples:     32,
	minAlpha:    1e-4,
	compression: 1,
}

func printGeneralUsage() {
	exe := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage: %s [arguments] <out>\n\n", exe)
	fmt.Fprintf(os.Stderr, "The arguments are:\n\n")
	flag.CommandLine.SetOutput(os.Stderr)
	flag.PrintDefaults()
	os.Exit(1)
}

func main() {
	flag.StringVar(&args.brdf, "brdf", args.brdf, "brdf to fit: ggx, beckmann or disney")
	flag.IntVar(&args.size, "size", args.size, "edge length of the lookup table")
	flag.IntVar(&args.samples, "samples", args.samples, "edge length of the per-cell sample grid")
	flag.Float64Var(&args.minAlpha, "min-alpha", args.minAlpha, "roughness floor")
	flag.IntVar(&args.compression, "compression", args.compression, "table compression, 0=none, 1..9=lz4")
	flag.BoolVar(&args.writeC, "c", args.writeC, "also export a C header")
	flag.BoolVar(&args.writeJS, "js", args.writeJS, "also export a javascript module")
	flag.BoolVar(&args.writeDDS, "dds", args.writeDDS, "also export the packed dds texture pair")
	flag.BoolVar(&args.verbose, "v", args.verbose, "log every fitted cell")

	flag.Parse()

	if flag.NArg() != 1 {
		printGeneralUsage()
	}

	level := slog.LevelInfo
	if args.verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		}),
	))

	model, ok := brdf.ByName(args.brdf)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown brdf %q\n", args.brdf)
		os.Exit(1)
	}

	cfg := ltc.Config{
		Resolution: args.size,
		Samples:    args.samples,
		MinAlpha:   float32(args.minAlpha),
	}

	fitter := ltc.NewFitter(model, cfg)
	fitter.Logger = slog.Default()

	slog.Info("fitting table", "brdf", args.brdf, "size", cfg.Resolution, "samples", cfg.Samples)
	start := time.Now()
	tab := fitter.Run()
	slog.Info("fit complete", "elapsed", time.Since(start).Round(time.Millisecond))

	fileext := path.Ext(flag.Arg(0))
	if fileext == "" {
		fileext = ".ltctab"
	}
	filename := strings.TrimSuffix(flag.Arg(0), fileext)

	saveTable(tab, filename+fileext)

	if args.writeC || args.writeJS || args.writeDDS {
		packed := ltc.Pack(tab)

		if args.writeC {
			save(filename+".h", func(f *os.File) error {
				return ltc.WriteTabC(f, tab)
			})
		}
		if args.writeJS {
			save(filename+".js", func(f *os.File) error {
				return ltc.WriteJS(f, packed)
			})
		}
		if args.writeDDS {
			f1, err := os.OpenFile(filename+"_1.dds", os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0666)
			harderr(err)
			defer f1.Close()
			f2, err := os.OpenFile(filename+"_2.dds", os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0666)
			harderr(err)
			defer f2.Close()
			harderr(ltc.WriteDDS(f1, f2, packed))
		}
	}
}

func saveTable(tab *ltc.Table, name string) {
	save(name, func(f *os.File) error {
		return ltc.EncodeTable(f, tab, ltc.OptCompress(args.compression-1))
	})
}

func save(name string, write func(f *os.File) error) {
	file, err := os.OpenFile(name, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0666)
	harderr(err)
	defer file.Close()
	harderr(write(file))
}

func harderr(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
