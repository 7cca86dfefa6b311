package gmm

// Kind identifies which concrete type a Chunk holds.
type Kind byte

const (
	KindList Kind = iota
	KindMapProperties
	KindMapCoords
	KindLevelProperties
	KindLevelCoords
	KindLevelCellLayers
	KindLevelAnnotations
	KindLevelRegions
	KindMapLinks
	KindUnknown Kind = 255
)

var kindNames = [...]string{
	"LIST", "MAP_PROP", "MAP_COOR", "LVL_PROP", "LVL_COOR",
	"LVL_CELL", "LVL_ANNO", "LVL_REGN", "MAP_LINKS",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "TYPE_UNKNOWN"
}

// Header is the 8-byte RIFF chunk header. Size excludes the header itself
// and any padding byte.
type Header struct {
	ID   [4]byte
	Size uint32
}

func (h Header) Tag() string {
	return string(h.ID[:])
}

func (h Header) Head() Header {
	return h
}

// Chunk is one decoded chunk. The set of implementations is closed: *List,
// *MapProperties, *MapCoords, *LevelProperties, *LevelCoords,
// *LevelCellLayers, *LevelAnnotations, *LevelRegions, *MapLinks and *Unknown.
type Chunk interface {
	Head() Header
	Kind() Kind
	isChunk()
}

type List struct {
	Header
	Type     [4]byte
	Children []Chunk
}

func (l *List) ListType() string {
	return string(l.Type[:])
}

type MapProperties struct {
	Header
	Version      uint16
	Title        string
	Game         string
	Author       string
	CreationTime string
	Notes        string
}

type Origin uint8

const (
	OriginNorthWest Origin = 0
	OriginSouthWest Origin = 1
)

type CoordStyle uint8

const (
	CoordStyleNumber CoordStyle = 0
	CoordStyleLetter CoordStyle = 1
)

// Coords is the wire layout shared by map and level coordinate chunks.
type Coords struct {
	Origin      Origin
	RowStyle    CoordStyle
	ColumnStyle CoordStyle
	RowStart    uint16
	ColumnStart uint16
}

type MapCoords struct {
	Header
	Coords
}

type LevelCoords struct {
	Header
	Coords
}

type LevelProperties struct {
	Header
	LocationName   string
	LevelName      string
	Elevation      int16
	Rows           uint16
	Columns        uint16
	OverrideCoords uint8
	Notes          string
}

// GridSize is the number of cells in each layer of this level. Cell grids
// carry one extra row and column for the south and east walls.
func (p *LevelProperties) GridSize() int {
	return (int(p.Columns) + 1) * (int(p.Rows) + 1)
}

type LevelCellLayers struct {
	Header
	Floor            []byte
	FloorOrientation []byte
	FloorColor       []byte
	WallNorth        []byte
	WallWest         []byte
	Trail            []byte
}

func (l *LevelCellLayers) CellCount() int {
	return len(l.Floor)
}

type AnnotationKind uint8

const (
	AnnotationComment AnnotationKind = iota
	AnnotationIndexed
	AnnotationCustom
	AnnotationIcon
	AnnotationLabel
)

// AnnotationPayload is the kind-specific part of an annotation. It is one of
// IndexedPayload, CustomPayload, IconPayload or LabelPayload, and nil for
// comments.
type AnnotationPayload interface {
	annotationKind() AnnotationKind
}

type IndexedPayload struct {
	Index      uint16
	IndexColor uint8
}

type CustomPayload struct {
	CustomID string
}

type IconPayload struct {
	Icon uint8
}

type LabelPayload struct {
	LabelColor uint8
}

func (IndexedPayload) annotationKind() AnnotationKind { return AnnotationIndexed }
func (CustomPayload) annotationKind() AnnotationKind  { return AnnotationCustom }
func (IconPayload) annotationKind() AnnotationKind    { return AnnotationIcon }
func (LabelPayload) annotationKind() AnnotationKind   { return AnnotationLabel }

type Annotation struct {
	Row     uint16
	Column  uint16
	Kind    AnnotationKind
	Text    string
	Payload AnnotationPayload
}

type LevelAnnotations struct {
	Header
	Annotations []Annotation
}

type Region struct {
	Name  string
	Notes string
}

type LevelRegions struct {
	Header
	Enabled          uint8
	RowsPerRegion    uint16
	ColumnsPerRegion uint16
	PerRegionCoords  uint8
	Regions          []Region
}

type Link struct {
	SrcLevel   uint16
	SrcRow     uint16
	SrcColumn  uint16
	DestLevel  uint16
	DestRow    uint16
	DestColumn uint16
}

type MapLinks struct {
	Header
	Links []Link
}

// Unknown is a chunk whose body was skipped.
type Unknown struct {
	Header
}

func (*List) Kind() Kind             { return KindList }
func (*MapProperties) Kind() Kind    { return KindMapProperties }
func (*MapCoords) Kind() Kind        { return KindMapCoords }
func (*LevelProperties) Kind() Kind  { return KindLevelProperties }
func (*LevelCoords) Kind() Kind      { return KindLevelCoords }
func (*LevelCellLayers) Kind() Kind  { return KindLevelCellLayers }
func (*LevelAnnotations) Kind() Kind { return KindLevelAnnotations }
func (*LevelRegions) Kind() Kind     { return KindLevelRegions }
func (*MapLinks) Kind() Kind         { return KindMapLinks }
func (*Unknown) Kind() Kind          { return KindUnknown }

func (*List) isChunk()             {}
func (*MapProperties) isChunk()    {}
func (*MapCoords) isChunk()        {}
func (*LevelProperties) isChunk()  {}
func (*LevelCoords) isChunk()      {}
func (*LevelCellLayers) isChunk()  {}
func (*LevelAnnotations) isChunk() {}
func (*LevelRegions) isChunk()     {}
func (*MapLinks) isChunk()         {}
func (*Unknown) isChunk()          {}
