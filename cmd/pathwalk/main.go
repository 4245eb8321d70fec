package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/brettbedarf/pathwalk"
	"github.com/brettbedarf/pathwalk/config"
	"github.com/brettbedarf/pathwalk/fs"
	"github.com/brettbedarf/pathwalk/internal/util"
)

func main() {
	// Parse command line arguments
	var (
		cfgPath   string
		verbose   int
		filesOnly bool
		maxDepth  int
	)
	flag.StringVar(&cfgPath, "config", "", "Path to a yaml/json config file")
	flag.StringVar(&cfgPath, "c", "", "--config (shorthand)")
	flag.BoolVar(&filesOnly, "files-only", false, "Only print files, not directories")
	flag.BoolVar(&filesOnly, "f", false, "--files-only (shorthand)")
	flag.IntVar(&maxDepth, "max-depth", 0, "Limit ** recursion depth. 0 is unlimited.")
	flag.IntVar(&verbose, "verbose", 3, "Log verbosity level between 1 (error) and 5 (trace). Default is 3 (info).")
	flag.IntVar(&verbose, "v", 3, "--verbose (shorthand)")
	flag.Parse()

	// Build config: file overrides first, flags on top
	var cfg *config.Config
	if cfgPath != "" {
		var err error
		cfg, err = config.NewConfigFromFile(cfgPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "pathwalk: %v\n", err)
			os.Exit(1)
		}
	} else {
		cfg = config.NewConfig(nil)
	}
	// only flags actually passed override the config file
	override := config.ConfigOverride{}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "verbose", "v":
			override.Verbose = &verbose
		case "files-only", "f":
			override.FilesOnly = &filesOnly
		case "max-depth":
			override.MaxDepth = &maxDepth
		}
	})
	cfg.Merge(&override)

	util.InitializeLogger(cfg.LogLvl)
	logger := util.GetLogger("main")

	pattern := flag.Arg(0)
	if pattern == "" {
		logger.Fatal().Msg("Glob pattern not specified; it must be passed as the argument")
	}
	logger.Debug().Str("pattern", pattern).Int("verbose", verbose).Msg("Expanding")

	exp := fs.NewExpander(cfg, nil)
	n := 0
	for p := range exp.Expand(pathwalk.New(pattern)) {
		fmt.Println(p)
		n++
	}
	logger.Debug().Int("matches", n).Msg("Done")
}
