package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"

	"github.com/eak1mov/go-tilemap/bundle"
	"github.com/eak1mov/go-tilemap/mapdir"
	"github.com/eak1mov/go-tilemap/mapstore"
	"github.com/eak1mov/go-tilemap/pack"
	"github.com/google/subcommands"
	"github.com/schollz/progressbar/v3"
)

type convertCmd struct {
	inputFormat  string
	inputPath    string
	outputFormat string
	outputPath   string
}

func (c *convertCmd) Name() string     { return "convert" }
func (c *convertCmd) Synopsis() string { return "convert between map storage formats" }
func (c *convertCmd) Usage() string {
	return "maputils convert -i <path> -o <path> [-if <format> | -of <format>]\n"
}
func (c *convertCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.inputPath, "i", "", "Input path")
	f.StringVar(&c.inputFormat, "if", "", "Input format (bundle, pack, dir)")
	f.StringVar(&c.outputPath, "o", "", "Output path")
	f.StringVar(&c.outputFormat, "of", "", "Output format (bundle, pack, dir)")
}

func (c *convertCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	inputFormat := deduceFormat(c.inputFormat, c.inputPath)
	outputFormat := deduceFormat(c.outputFormat, c.outputPath)

	var err error
	var reader mapstore.Visitor
	switch inputFormat {
	case "bundle":
		reader, err = bundle.NewReader(c.inputPath)
	case "pack":
		reader, err = pack.NewFileReader(c.inputPath)
	case "dir", "":
		reader, err = mapdir.NewReader(c.inputPath)
	default:
		log.Printf("invalid input format: %q", c.inputFormat)
		return subcommands.ExitFailure
	}
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	if closer, ok := reader.(io.Closer); ok {
		defer closer.Close()
	}

	var packMetadata []byte
	if inputFormat == "bundle" && outputFormat == "pack" {
		metadata, err := reader.(*bundle.Reader).ReadMetadata()
		if err != nil {
			log.Println(err)
			return subcommands.ExitFailure
		}
		if len(metadata) > 0 {
			packMetadata, err = json.Marshal(metadata)
			if err != nil {
				log.Println("failed to convert metadata:", err)
				return subcommands.ExitFailure
			}
		}
	}

	var writer mapstore.Writer
	switch outputFormat {
	case "bundle":
		writer, err = bundle.NewWriter(c.outputPath, bundle.WithLogger(slog.Default()))
	case "pack":
		writer, err = pack.NewWriter(
			c.outputPath,
			pack.WithMetadata(packMetadata),
			pack.WithLogger(slog.Default()),
		)
	case "dir", "":
		writer, err = mapdir.NewWriter(c.outputPath)
	default:
		log.Printf("invalid output format: %q", c.outputFormat)
		return subcommands.ExitFailure
	}
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	if closer, ok := writer.(io.Closer); ok {
		defer closer.Close()
	}

	bar := progressbar.NewOptions(-1, progressbar.OptionShowIts(), progressbar.OptionShowCount())
	err = reader.VisitMaps(func(name string, mapData []byte) error {
		err := writer.WriteMap(name, mapData)
		bar.Add(1)
		return err
	})
	bar.Finish()
	fmt.Println()

	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	if err := writer.Finalize(); err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
