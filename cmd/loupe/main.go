// Command loupe is a glTF 2.0 scene viewer: it imports a scene onto the GPU
// at startup and renders it with a fly camera.
//
// Usage:
//
//	loupe [flags] scene.gltf
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/duskglow/loupe/common"
	"github.com/duskglow/loupe/engine"
	"github.com/duskglow/loupe/engine/config"
)

func main() {
	configPath := flag.String("config", "loupe.toml", "path to the TOML configuration file")
	logLevel := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [scene.gltf]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	common.SetLogLevel(*logLevel)

	cfg, err := config.Load(*configPath)
	if err != nil {
		common.LogFatal("%v", err)
	}

	options := []engine.EngineBuilderOption{engine.WithConfig(cfg)}
	if flag.NArg() > 0 {
		options = append(options, engine.WithScenePath(flag.Arg(0)))
	}

	if err := engine.NewEngine(options...).Run(); err != nil {
		common.LogFatal("%v", err)
	}
}
