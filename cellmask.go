package main

import (
	"github.com/gridtools/gmm2json/gmm"
	"github.com/willf/bitset"
)

// layerMask marks every cell whose value in layer is non-zero.
func layerMask(layer []byte) *bitset.BitSet {
	set := bitset.New(uint(len(layer)))
	for idx, value := range layer {
		if value != 0 {
			set.Set(uint(idx))
		}
	}
	return set
}

type cellSummary struct {
	Cells  int
	Floors uint
	Walls  uint
	Trail  uint
}

func summarizeCells(cells *gmm.LevelCellLayers) cellSummary {
	walls := layerMask(cells.WallNorth)
	walls.InPlaceUnion(layerMask(cells.WallWest))
	return cellSummary{
		Cells:  cells.CellCount(),
		Floors: layerMask(cells.Floor).Count(),
		Walls:  walls.Count(),
		Trail:  layerMask(cells.Trail).Count(),
	}
}
