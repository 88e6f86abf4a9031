package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/eak1mov/go-tilemap/tilemap"
	"github.com/google/subcommands"
)

type inspectCmd struct {
	inputPath string
	showCells bool
}

func (c *inspectCmd) Name() string     { return "inspect" }
func (c *inspectCmd) Synopsis() string { return "print the structure of a single map file" }
func (c *inspectCmd) Usage() string {
	return "maputils inspect -i <path> [-cells]\n"
}
func (c *inspectCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.inputPath, "i", "", "Input map file path")
	f.BoolVar(&c.showCells, "cells", false, "Dump tile and sublayer grids")
}

func (c *inspectCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	file, err := os.Open(c.inputPath)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	defer file.Close()

	tileMap, err := tilemap.Read(file)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	fmt.Printf("layers: %v\n", len(tileMap.Layers))
	for i, layer := range tileMap.Layers {
		fmt.Printf("layer %v: %vx%v tiles, %v sublayers\n",
			i, layer.Width(), layer.Height(), layer.SublayerCount())
		if c.showCells {
			printGrid(layer.Tiles(), layer.Width(), tilemap.TileSize, "  ")
		}
		for sublayer := range layer.Sublayers() {
			fmt.Printf("  sublayer %q: %v-byte cells\n", sublayer.Tag(), sublayer.CellSize())
			if c.showCells {
				printGrid(sublayer.Bytes(), sublayer.Width(), sublayer.CellSize(), "    ")
			}
		}
	}

	return subcommands.ExitSuccess
}

// printGrid dumps row-major cells as one hex word per cell, one row per line.
func printGrid(cells []byte, width, cellSize int, indent string) {
	if width == 0 || cellSize == 0 {
		return
	}
	rowLen := width * cellSize
	for row := 0; row < len(cells); row += rowLen {
		var sb strings.Builder
		sb.WriteString(indent)
		for col := 0; col < rowLen; col += cellSize {
			if col > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%x", cells[row+col:row+col+cellSize])
		}
		fmt.Println(sb.String())
	}
}
