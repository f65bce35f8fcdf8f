// Command levelinfo loads every configured level without a window and
// prints what each one contains. With -compress it also writes a zstd copy
// of every model the levels use.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"text/tabwriter"

	"levelrenderer/internal/config"
	"levelrenderer/internal/level"

	"github.com/dustin/go-humanize"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "renderer config file")
	compress := flag.Bool("compress", false, "write <model>.h2b.zst next to every model used")
	verbose := flag.Bool("v", false, "print loader log lines")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil && (!errors.Is(err, fs.ErrNotExist) || *configPath != config.DefaultPath) {
		log.Fatalf("Config: %v", err)
	}
	levels := cfg.Paths.Levels
	if flag.NArg() > 0 {
		levels = flag.Args()
	}

	loader := &level.Loader{ModelDir: cfg.Paths.Models}
	if !*verbose {
		loader.Log = log.New(io.Discard, "", 0)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "LEVEL\tOBJECTS\tMODELS\tMESHES\tMATERIALS\tVERTICES\tINDICES\tGEOMETRY\tCAMERA")
	failed := 0
	compressed := make(map[string]bool)
	for _, path := range levels {
		lvl, err := loader.Load(path)
		if err != nil {
			log.Printf("Level: %v", err)
			failed++
			continue
		}
		st := lvl.Stats()
		_, hasCamera := lvl.Camera()
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%s\t%s\t%s\t%t\n",
			path, st.Objects, st.Models, st.Meshes, st.Materials,
			humanize.Comma(int64(st.Vertices)), humanize.Comma(int64(st.Indices)),
			humanize.Bytes(st.Bytes), hasCamera)

		if !*compress {
			continue
		}
		for _, m := range lvl.Models {
			if compressed[m.File] {
				continue
			}
			compressed[m.File] = true
			dst, size, err := level.CompressModel(m.File)
			if err != nil {
				log.Printf("Compress: %v", err)
				continue
			}
			log.Printf("Compress: %s (%s)", dst, humanize.Bytes(uint64(size)))
		}
	}
	tw.Flush()
	if failed > 0 {
		os.Exit(1)
	}
}
