package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"

	"github.com/eak1mov/go-tilemap/bundle"
	"github.com/eak1mov/go-tilemap/mapdir"
	"github.com/eak1mov/go-tilemap/mapstore"
	"github.com/eak1mov/go-tilemap/pack"
	"github.com/google/subcommands"
)

type listCmd struct {
	inputFormat string
	inputPath   string
}

func (c *listCmd) Name() string     { return "list" }
func (c *listCmd) Synopsis() string { return "list the maps in a map store" }
func (c *listCmd) Usage() string {
	return "maputils list -i <path> [-if <format>]\n"
}
func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.inputPath, "i", "", "Input path")
	f.StringVar(&c.inputFormat, "if", "", "Input format (bundle, pack, dir)")
}

func (c *listCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	var err error
	var reader mapstore.Visitor
	switch deduceFormat(c.inputFormat, c.inputPath) {
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

	count := 0
	if visitor, ok := reader.(mapstore.LocationVisitor); ok {
		err = visitor.VisitLocations(func(name string, location mapstore.Location) error {
			fmt.Printf("%10d  %v\n", location.Length, name)
			count++
			return nil
		})
	} else {
		err = reader.VisitMaps(func(name string, mapData []byte) error {
			fmt.Printf("%10d  %v\n", len(mapData), name)
			count++
			return nil
		})
	}
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	fmt.Printf("%v maps\n", count)
	return subcommands.ExitSuccess
}
