package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:      "gmm2json",
		Usage:     "converts Gridmonger .gmm maps to JSON",
		ArgsUsage: "<file.gmm | directory>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "write to `FILE` instead of stdout (single file only)"},
			&cli.StringFlag{Name: "format", Value: string(OutputFormatJSON), Usage: "output format: json or yaml"},
			&cli.StringFlag{Name: "compress", Value: string(OutputCompressionNone), Usage: "output compression: none, gzip or zstd"},
			&cli.BoolFlag{Name: "indent", Usage: "indent JSON output"},
			&cli.BoolFlag{Name: "tree", Usage: "print the chunk tree to stderr"},
			&cli.BoolFlag{Name: "watch", Usage: "convert again whenever the input changes"},
			&cli.IntFlag{Name: "jobs", Aliases: []string{"j"}, Value: runtime.NumCPU(), Usage: "files converted at once in directory mode"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return cli.ShowAppHelp(c)
			}

			conv, err := converterFromFlags(c)
			if err != nil {
				return err
			}

			input := c.Args().Get(0)
			info, err := os.Stat(input)
			if err != nil {
				return err
			}

			var run func(changed string) error
			var watchDir string
			if info.IsDir() {
				if c.String("output") != "" {
					return fmt.Errorf("--output cannot be used with a directory")
				}
				watchDir = input
				run = func(changed string) error {
					if changed == "" {
						return conv.ConvertDirectory(input, c.Int("jobs"))
					}
					return conv.ConvertToFile(changed, conv.OutputPath(changed))
				}
			} else {
				watchDir = filepath.Dir(input)
				run = func(changed string) error {
					if changed != "" && filepath.Clean(changed) != filepath.Clean(input) {
						return nil
					}
					if output := c.String("output"); output != "" {
						return conv.ConvertToFile(input, output)
					}
					return conv.Convert(input, os.Stdout)
				}
			}

			err = run("")
			if !c.Bool("watch") {
				return err
			}
			if err != nil {
				log.Println(err)
			}
			return watchAndRun(watchDir, run)
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}

func converterFromFlags(c *cli.Context) (*Converter, error) {
	conv := &Converter{
		Format:      OutputFormat(c.String("format")),
		Compression: OutputCompression(c.String("compress")),
		Indent:      c.Bool("indent"),
	}
	switch conv.Format {
	case OutputFormatJSON, OutputFormatYAML:
	default:
		return nil, fmt.Errorf("unknown format %q", conv.Format)
	}
	switch conv.Compression {
	case OutputCompressionNone, OutputCompressionGzip, OutputCompressionZstd:
	default:
		return nil, fmt.Errorf("unknown compression %q", conv.Compression)
	}
	if c.Bool("tree") {
		conv.Tree = os.Stderr
	}
	return conv, nil
}

// watchAndRun calls run for every changed GMM file in dir until interrupted.
func watchAndRun(dir string, run func(changed string) error) error {
	watcher, err := NewWatcher(dir)
	if err != nil {
		return err
	}
	defer watcher.Close()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	log.Println("watching", dir)
	for {
		select {
		case changed, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			log.Println("changed", changed)
			if err := run(changed); err != nil {
				log.Println(err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Println("watch error:", err)
		case <-interrupt:
			return nil
		}
	}
}
