package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/suparena/querycache"
	"github.com/suparena/querycache/processor"
)

var (
	versionFlag  = flag.Bool("version", false, "Show version information")
	vFlag        = flag.Bool("v", false, "Show version information (short)")
	manifestFlag = flag.String("manifest", "models.yaml", "Path to the model manifest")
	outFlag      = flag.String("out", "", "Output file (default stdout)")
)

func main() {
	flag.Parse()

	if *versionFlag || *vFlag {
		info := querycache.GetVersionInfo()
		fmt.Printf("QueryCache keymap version %s\n", info.Version)
		fmt.Printf("Git commit: %s\n", info.GitCommit)
		fmt.Printf("Build date: %s\n", info.BuildDate)
		fmt.Printf("Go version: %s\n", info.GoVersion)
		os.Exit(0)
	}

	if err := processor.Run(*manifestFlag, *outFlag); err != nil {
		fmt.Fprintf(os.Stderr, "keymap: %v\n", err)
		os.Exit(1)
	}
}
