package gmm

import (
	"errors"
	"fmt"

	"golang.org/x/exp/slices"
)

// Chunks with these tags hold editor state only and are skipped without
// producing a node.
var ignoredTags = []string{"disp", "opts", "tool", "notl"}

const (
	listTypeMap   = "map "
	listTypeLevel = "lvl "
)

// MaxGridSize is the largest number of cells per layer a level may declare.
// Cell chunks of larger levels fail with ErrBadInput before any layer is
// allocated.
const MaxGridSize = 1 << 24

// decodeContext is copied into every LIST scope. Changes made while decoding
// a scope are seen by that scope's later siblings only.
type decodeContext struct {
	listType [4]byte
	gridSize int
}

func (ctx decodeContext) ListType() string {
	return string(ctx.listType[:])
}

// Fixed-layout parts of chunk bodies, in wire order.

type levelPropsRecord struct {
	Elevation      int16
	Rows           uint16
	Columns        uint16
	OverrideCoords uint8
}

type annotationRecord struct {
	Row    uint16
	Column uint16
	Kind   AnnotationKind
}

type regionsRecord struct {
	Enabled          uint8
	RowsPerRegion    uint16
	ColumnsPerRegion uint16
	PerRegionCoords  uint8
	Count            uint16
}

// Decode decodes the payload of a GMM file, that is everything after the
// outer RIFF header, into a forest of chunks in file order.
func Decode(payload []byte) ([]Chunk, error) {
	return decodeChunks(NewCursor(payload), decodeContext{})
}

func decodeChunks(c *Cursor, ctx decodeContext) ([]Chunk, error) {
	var chunks []Chunk
	for c.Remaining() > 0 {
		offset := c.Offset()
		header, err := readRecord[Header](c)
		if err != nil {
			return nil, &ChunkError{Offset: offset, Err: err}
		}
		declared := int(header.Size)
		start := c.Remaining()

		var chunk Chunk
		switch tag := header.Tag(); {
		case slices.Contains(ignoredTags, tag):
			err = c.Advance(declared)
		case tag == "LIST":
			chunk, err = decodeList(c, header, ctx)
		default:
			chunk, err = decodeBody(c, header, &ctx)
		}
		if err != nil {
			return nil, wrapChunkError(header, offset, err)
		}

		consumed := start - c.Remaining()
		if consumed > declared {
			return nil, &ChunkError{
				Tag:    header.Tag(),
				Offset: offset,
				Err:    fmt.Errorf("%w: consumed %d of %d bytes", ErrOverrun, consumed, declared),
			}
		}
		if defect := declared - consumed; defect > 0 {
			if err = c.Advance(defect); err != nil {
				return nil, wrapChunkError(header, offset, err)
			}
		}
		// Chunks are word aligned. The final pad byte of a buffer may be absent.
		if header.Size%2 == 1 && c.Remaining() > 0 {
			if err = c.Advance(1); err != nil {
				return nil, wrapChunkError(header, offset, err)
			}
		}

		if chunk != nil {
			chunks = append(chunks, chunk)
		}
	}
	return chunks, nil
}

func wrapChunkError(header Header, offset int, err error) error {
	var chunkErr *ChunkError
	if errors.As(err, &chunkErr) {
		return err
	}
	return &ChunkError{Tag: header.Tag(), Offset: offset, Err: err}
}

func decodeList(c *Cursor, header Header, ctx decodeContext) (Chunk, error) {
	if header.Size < 4 {
		return nil, fmt.Errorf("%w: LIST of %d bytes has no room for its type", ErrBufferTooSmall, header.Size)
	}
	listType, err := c.Bytes(4)
	if err != nil {
		return nil, err
	}

	list := &List{Header: header}
	copy(list.Type[:], listType)

	body, err := c.Sub(int(header.Size) - 4)
	if err != nil {
		return nil, err
	}
	ctx.listType = list.Type
	if list.Children, err = decodeChunks(body, ctx); err != nil {
		return nil, err
	}
	return list, nil
}

func decodeBody(c *Cursor, header Header, ctx *decodeContext) (Chunk, error) {
	switch header.Tag() {
	case "prop":
		switch ctx.ListType() {
		case listTypeMap:
			return decodeMapProperties(c, header)
		case listTypeLevel:
			props, err := decodeLevelProperties(c, header)
			if err != nil {
				return nil, err
			}
			ctx.gridSize = props.GridSize()
			return props, nil
		}
	case "coor":
		switch ctx.ListType() {
		case listTypeMap:
			coords, err := readRecord[Coords](c)
			if err != nil {
				return nil, err
			}
			return &MapCoords{Header: header, Coords: coords}, nil
		case listTypeLevel:
			coords, err := readRecord[Coords](c)
			if err != nil {
				return nil, err
			}
			return &LevelCoords{Header: header, Coords: coords}, nil
		}
	case "cell":
		return decodeLevelCellLayers(c, header, ctx.gridSize)
	case "anno":
		return decodeLevelAnnotations(c, header)
	case "regn":
		return decodeLevelRegions(c, header)
	case "lnks":
		return decodeMapLinks(c, header)
	}
	return &Unknown{Header: header}, nil
}

func decodeMapProperties(c *Cursor, header Header) (Chunk, error) {
	props := &MapProperties{Header: header}
	var err error
	if props.Version, err = c.Uint16(); err != nil {
		return nil, err
	}
	if props.Title, err = ReadWideString(c); err != nil {
		return nil, fmt.Errorf("map title: %w", err)
	}
	if props.Game, err = ReadWideString(c); err != nil {
		return nil, fmt.Errorf("map game: %w", err)
	}
	if props.Author, err = ReadWideString(c); err != nil {
		return nil, fmt.Errorf("map author: %w", err)
	}
	if props.CreationTime, err = ReadByteString(c); err != nil {
		return nil, fmt.Errorf("map creation time: %w", err)
	}
	if props.Notes, err = ReadWideString(c); err != nil {
		return nil, fmt.Errorf("map notes: %w", err)
	}
	return props, nil
}

func decodeLevelProperties(c *Cursor, header Header) (*LevelProperties, error) {
	props := &LevelProperties{Header: header}
	var err error
	if props.LocationName, err = ReadWideString(c); err != nil {
		return nil, fmt.Errorf("level location name: %w", err)
	}
	if props.LevelName, err = ReadWideString(c); err != nil {
		return nil, fmt.Errorf("level name: %w", err)
	}

	fixed, err := readRecord[levelPropsRecord](c)
	if err != nil {
		return nil, err
	}
	props.Elevation = fixed.Elevation
	props.Rows = fixed.Rows
	props.Columns = fixed.Columns
	props.OverrideCoords = fixed.OverrideCoords

	if props.Notes, err = ReadWideString(c); err != nil {
		return nil, fmt.Errorf("level notes: %w", err)
	}
	return props, nil
}

func decodeLevelCellLayers(c *Cursor, header Header, gridSize int) (Chunk, error) {
	if gridSize == 0 {
		return nil, ErrNoGridSize
	}
	if gridSize > MaxGridSize {
		return nil, fmt.Errorf("%w: grid of %d cells exceeds %d", ErrBadInput, gridSize, MaxGridSize)
	}
	cells := &LevelCellLayers{Header: header}
	layers := []struct {
		name string
		dst  *[]byte
	}{
		{"floor", &cells.Floor},
		{"floor orientation", &cells.FloorOrientation},
		{"floor color", &cells.FloorColor},
		{"north wall", &cells.WallNorth},
		{"west wall", &cells.WallWest},
		{"trail", &cells.Trail},
	}
	for _, layer := range layers {
		grid, err := DecodeCellLayer(c, gridSize)
		if err != nil {
			return nil, fmt.Errorf("%s layer: %w", layer.name, err)
		}
		*layer.dst = grid
	}
	return cells, nil
}

func decodeLevelAnnotations(c *Cursor, header Header) (Chunk, error) {
	count, err := c.Uint16()
	if err != nil {
		return nil, err
	}
	annos := &LevelAnnotations{Header: header, Annotations: make([]Annotation, 0, count)}
	for i := 0; i < int(count); i++ {
		anno, err := decodeAnnotation(c)
		if err != nil {
			return nil, fmt.Errorf("annotation %d: %w", i, err)
		}
		annos.Annotations = append(annos.Annotations, anno)
	}
	return annos, nil
}

func decodeAnnotation(c *Cursor) (anno Annotation, err error) {
	fixed, err := readRecord[annotationRecord](c)
	if err != nil {
		return
	}
	anno.Row = fixed.Row
	anno.Column = fixed.Column
	anno.Kind = fixed.Kind

	switch anno.Kind {
	case AnnotationComment:
	case AnnotationIndexed:
		var payload IndexedPayload
		if payload, err = readRecord[IndexedPayload](c); err != nil {
			return
		}
		anno.Payload = payload
	case AnnotationCustom:
		var id string
		if id, err = ReadByteString(c); err != nil {
			return
		}
		anno.Payload = CustomPayload{CustomID: id}
	case AnnotationIcon:
		var icon uint8
		if icon, err = c.Uint8(); err != nil {
			return
		}
		anno.Payload = IconPayload{Icon: icon}
	case AnnotationLabel:
		var color uint8
		if color, err = c.Uint8(); err != nil {
			return
		}
		anno.Payload = LabelPayload{LabelColor: color}
	default:
		err = fmt.Errorf("%w: annotation kind %d", ErrBadInput, anno.Kind)
		return
	}

	anno.Text, err = ReadWideString(c)
	return
}

func decodeLevelRegions(c *Cursor, header Header) (Chunk, error) {
	fixed, err := readRecord[regionsRecord](c)
	if err != nil {
		return nil, err
	}
	regions := &LevelRegions{
		Header:           header,
		Enabled:          fixed.Enabled,
		RowsPerRegion:    fixed.RowsPerRegion,
		ColumnsPerRegion: fixed.ColumnsPerRegion,
		PerRegionCoords:  fixed.PerRegionCoords,
		Regions:          make([]Region, 0, fixed.Count),
	}
	for i := 0; i < int(fixed.Count); i++ {
		var region Region
		if region.Name, err = ReadWideString(c); err != nil {
			return nil, fmt.Errorf("region %d name: %w", i, err)
		}
		if region.Notes, err = ReadWideString(c); err != nil {
			return nil, fmt.Errorf("region %d notes: %w", i, err)
		}
		regions.Regions = append(regions.Regions, region)
	}
	return regions, nil
}

func decodeMapLinks(c *Cursor, header Header) (Chunk, error) {
	count, err := c.Uint16()
	if err != nil {
		return nil, err
	}
	links := &MapLinks{Header: header, Links: make([]Link, 0, count)}
	for i := 0; i < int(count); i++ {
		link, err := readRecord[Link](c)
		if err != nil {
			return nil, fmt.Errorf("link %d: %w", i, err)
		}
		links.Links = append(links.Links, link)
	}
	return links, nil
}
