package main

import (
	"fmt"

	"github.com/gridtools/gmm2json/gmm"
)

// The exported document mirrors the chunk tree. Every chunk becomes an object
// tagged with its chunk_type; lists carry their children in file order.

type chunkDoc struct {
	ChunkType string `json:"chunk_type"`
}

type listDoc struct {
	chunkDoc
	ListType string        `json:"list_type"`
	Children []interface{} `json:"children"`
}

type mapPropDoc struct {
	chunkDoc
	Version      uint16 `json:"version"`
	Title        string `json:"title"`
	Game         string `json:"game"`
	Author       string `json:"author"`
	CreationTime string `json:"creation_time"`
	Notes        string `json:"notes"`
}

type coordsDoc struct {
	chunkDoc
	Origin      uint8  `json:"origin"`
	RowStyle    uint8  `json:"row_style"`
	ColumnStyle uint8  `json:"column_style"`
	RowStart    uint16 `json:"row_start"`
	ColumnStart uint16 `json:"column_start"`
}

type levelPropDoc struct {
	chunkDoc
	LocationName      string `json:"location_name"`
	LevelName         string `json:"level_name"`
	Elevation         int16  `json:"elevation"`
	NumRows           uint16 `json:"num_rows"`
	NumColumns        uint16 `json:"num_columns"`
	OverrideCoordOpts uint8  `json:"override_coord_opts"`
	Notes             string `json:"notes"`
}

type levelCellDoc struct {
	chunkDoc
	Floor            []int `json:"floor"`
	FloorOrientation []int `json:"floor_orientation"`
	FloorColor       []int `json:"floor_color"`
	WallNorth        []int `json:"wall_north"`
	WallWest         []int `json:"wall_west"`
	Trail            []int `json:"trail"`
}

type annotationDoc struct {
	Row        uint16  `json:"row"`
	Column     uint16  `json:"column"`
	Kind       uint8   `json:"kind"`
	Text       string  `json:"text"`
	Index      *uint16 `json:"index,omitempty"`
	IndexColor *uint8  `json:"index_color,omitempty"`
	CustomID   *string `json:"custom_id,omitempty"`
	Icon       *uint8  `json:"icon,omitempty"`
	LabelColor *uint8  `json:"label_color,omitempty"`
}

type levelAnnoDoc struct {
	chunkDoc
	NumAnnotations int             `json:"num_annotations"`
	Records        []annotationDoc `json:"records"`
}

type regionDoc struct {
	Name  string `json:"name"`
	Notes string `json:"notes"`
}

type levelRegnDoc struct {
	chunkDoc
	EnableRegions    uint8       `json:"enable_regions"`
	RowsPerRegion    uint16      `json:"rows_per_region"`
	ColumnsPerRegion uint16      `json:"columns_per_region"`
	PerRegionCoords  uint8       `json:"per_region_coords"`
	NumRegions       int         `json:"num_regions"`
	Records          []regionDoc `json:"records"`
}

type linkDoc struct {
	SrcLevelIndex  uint16 `json:"src_level_index"`
	SrcRow         uint16 `json:"src_row"`
	SrcColumn      uint16 `json:"src_column"`
	DestLevelIndex uint16 `json:"dest_level_index"`
	DestRow        uint16 `json:"dest_row"`
	DestColumn     uint16 `json:"dest_column"`
}

type mapLinksDoc struct {
	chunkDoc
	NumLinks int       `json:"num_links"`
	Records  []linkDoc `json:"records"`
}

func exportChunks(chunks []gmm.Chunk) []interface{} {
	docs := make([]interface{}, 0, len(chunks))
	for _, ck := range chunks {
		docs = append(docs, exportChunk(ck))
	}
	return docs
}

func exportChunk(ck gmm.Chunk) interface{} {
	head := chunkDoc{ChunkType: ck.Kind().String()}

	switch ck := ck.(type) {
	case *gmm.List:
		return listDoc{chunkDoc: head, ListType: ck.ListType(), Children: exportChunks(ck.Children)}
	case *gmm.MapProperties:
		return mapPropDoc{
			chunkDoc:     head,
			Version:      ck.Version,
			Title:        ck.Title,
			Game:         ck.Game,
			Author:       ck.Author,
			CreationTime: ck.CreationTime,
			Notes:        ck.Notes,
		}
	case *gmm.MapCoords:
		return exportCoords(head, ck.Coords)
	case *gmm.LevelCoords:
		return exportCoords(head, ck.Coords)
	case *gmm.LevelProperties:
		return levelPropDoc{
			chunkDoc:          head,
			LocationName:      ck.LocationName,
			LevelName:         ck.LevelName,
			Elevation:         ck.Elevation,
			NumRows:           ck.Rows,
			NumColumns:        ck.Columns,
			OverrideCoordOpts: ck.OverrideCoords,
			Notes:             ck.Notes,
		}
	case *gmm.LevelCellLayers:
		return levelCellDoc{
			chunkDoc:         head,
			Floor:            cellValues(ck.Floor),
			FloorOrientation: cellValues(ck.FloorOrientation),
			FloorColor:       cellValues(ck.FloorColor),
			WallNorth:        cellValues(ck.WallNorth),
			WallWest:         cellValues(ck.WallWest),
			Trail:            cellValues(ck.Trail),
		}
	case *gmm.LevelAnnotations:
		records := make([]annotationDoc, 0, len(ck.Annotations))
		for _, anno := range ck.Annotations {
			records = append(records, exportAnnotation(anno))
		}
		return levelAnnoDoc{chunkDoc: head, NumAnnotations: len(records), Records: records}
	case *gmm.LevelRegions:
		records := make([]regionDoc, 0, len(ck.Regions))
		for _, region := range ck.Regions {
			records = append(records, regionDoc{Name: region.Name, Notes: region.Notes})
		}
		return levelRegnDoc{
			chunkDoc:         head,
			EnableRegions:    ck.Enabled,
			RowsPerRegion:    ck.RowsPerRegion,
			ColumnsPerRegion: ck.ColumnsPerRegion,
			PerRegionCoords:  ck.PerRegionCoords,
			NumRegions:       len(records),
			Records:          records,
		}
	case *gmm.MapLinks:
		records := make([]linkDoc, 0, len(ck.Links))
		for _, link := range ck.Links {
			records = append(records, linkDoc{
				SrcLevelIndex:  link.SrcLevel,
				SrcRow:         link.SrcRow,
				SrcColumn:      link.SrcColumn,
				DestLevelIndex: link.DestLevel,
				DestRow:        link.DestRow,
				DestColumn:     link.DestColumn,
			})
		}
		return mapLinksDoc{chunkDoc: head, NumLinks: len(records), Records: records}
	case *gmm.Unknown:
		return head
	default:
		panic(fmt.Sprintf("export: unhandled chunk type %T", ck))
	}
}

func exportCoords(head chunkDoc, coords gmm.Coords) coordsDoc {
	return coordsDoc{
		chunkDoc:    head,
		Origin:      uint8(coords.Origin),
		RowStyle:    uint8(coords.RowStyle),
		ColumnStyle: uint8(coords.ColumnStyle),
		RowStart:    coords.RowStart,
		ColumnStart: coords.ColumnStart,
	}
}

func exportAnnotation(anno gmm.Annotation) annotationDoc {
	doc := annotationDoc{Row: anno.Row, Column: anno.Column, Kind: uint8(anno.Kind), Text: anno.Text}
	switch payload := anno.Payload.(type) {
	case nil:
	case gmm.IndexedPayload:
		doc.Index = &payload.Index
		doc.IndexColor = &payload.IndexColor
	case gmm.CustomPayload:
		doc.CustomID = &payload.CustomID
	case gmm.IconPayload:
		doc.Icon = &payload.Icon
	case gmm.LabelPayload:
		doc.LabelColor = &payload.LabelColor
	default:
		panic(fmt.Sprintf("export: unhandled annotation payload %T", payload))
	}
	return doc
}

// cellValues widens a layer so it is encoded as a list of numbers rather
// than a base64 string.
func cellValues(layer []byte) []int {
	values := make([]int, len(layer))
	for i, v := range layer {
		values[i] = int(v)
	}
	return values
}
