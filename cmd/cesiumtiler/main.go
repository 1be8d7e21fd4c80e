package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"time"

	tiler "github.com/vladimirpajic/cesium-3d-tiles-generator"
	"github.com/urfave/cli/v2"
)

// this global variable controls the tiler that will be used. Useful to inject mocks during tests.
var tilerProvider func() (tiler.Tiler, error) = func() (tiler.Tiler, error) {
	return tiler.NewGoCesiumTiler()
}

var version = "1.0.0"

const logo = `
                           _                 _   _ _
  __ _  ___   ___ ___  ___(_)_   _ _ __ ___ | |_(_) | ___ _ __
 / _  |/ _ \ / __/ _ \/ __| | | | | '_   _ \| __| | |/ _ \ '__|
| (_| | (_) | (_|  __/\__ \ | |_| | | | | | | |_| | |  __/ |
 \__, |\___/ \___\___||___/_|\__,_|_| |_| |_|\__|_|_|\___|_|
  __| | LAS/LAZ to Cesium 3D Tiles converter
 |___/  Copyright YYYY
`

func main() {
	printBanner()
	getCli().Run(os.Args)
}

func getCli() *cli.App {
	return &cli.App{
		Name:      "cesiumtiler",
		Usage:     "converts a folder of LAS/LAZ files into a Cesium 3D Tiles tileset",
		Version:   version,
		ArgsUsage: "<input-dir> <output-dir>",
		Action: func(cCtx *cli.Context) error {
			if cCtx.Args().Len() != 2 {
				log.Fatal("exactly two arguments are required: <input-dir> <output-dir>")
			}
			run(cCtx.Args().Get(0), cCtx.Args().Get(1))
			return nil
		},
	}
}

func run(inputDir, outputDir string) {
	t, err := tilerProvider()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("*** Reading %s, writing tileset to %s\n", inputDir, outputDir)

	opts := tiler.NewTilerOptions(tiler.WithCallback(eventListener))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	wg := &sync.WaitGroup{}
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := t.ProcessFolder(inputDir, outputDir, opts, ctx); err != nil {
			log.Fatal(err)
		}
	}()
	wg.Wait()
}

func eventListener(e tiler.TilerEvent, desc string, elapsed int64, msg string) {
	fmt.Printf("[%s] [%s] %s\n", time.Now().UTC().Format("2006-01-02 15:04:05.000"), desc, msg)
}

func printBanner() {
	fmt.Println(strings.ReplaceAll(logo, "YYYY", strconv.Itoa(time.Now().Year())))
}
