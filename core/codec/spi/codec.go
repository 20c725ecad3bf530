package spi

import (
	"fmt"

	"github.com/op/go-logging"
	"golang.org/x/exp/slices"
)

var log = logging.MustGetLogger("spi")

// codecs/Codec.java

// The ten sub-formats a codec is made of.
type Role int

const (
	ROLE_COMPOUND Role = iota
	ROLE_DOC_VALUES
	ROLE_FIELD_INFOS
	ROLE_LIVE_DOCS
	ROLE_NORMS
	ROLE_POINTS
	ROLE_POSTINGS
	ROLE_SEGMENT_INFO
	ROLE_STORED_FIELDS
	ROLE_TERM_VECTORS
)

// All roles, in display order.
var Roles = []Role{
	ROLE_COMPOUND,
	ROLE_DOC_VALUES,
	ROLE_FIELD_INFOS,
	ROLE_LIVE_DOCS,
	ROLE_NORMS,
	ROLE_POINTS,
	ROLE_POSTINGS,
	ROLE_SEGMENT_INFO,
	ROLE_STORED_FIELDS,
	ROLE_TERM_VECTORS,
}

var roleNames = map[Role]string{
	ROLE_COMPOUND:      "compound",
	ROLE_DOC_VALUES:    "doc-values",
	ROLE_FIELD_INFOS:   "field-infos",
	ROLE_LIVE_DOCS:     "live-docs",
	ROLE_NORMS:         "norms",
	ROLE_POINTS:        "points",
	ROLE_POSTINGS:      "postings",
	ROLE_SEGMENT_INFO:  "segment-info",
	ROLE_STORED_FIELDS: "stored-fields",
	ROLE_TERM_VECTORS:  "term-vectors",
}

var roleLabels = map[Role]string{
	ROLE_COMPOUND:      "Compound format",
	ROLE_DOC_VALUES:    "DocValues format",
	ROLE_FIELD_INFOS:   "FieldInfos format",
	ROLE_LIVE_DOCS:     "LiveDocs format",
	ROLE_NORMS:         "Norms format",
	ROLE_POINTS:        "Points format",
	ROLE_POSTINGS:      "Postings format",
	ROLE_SEGMENT_INFO:  "SegmentInfo format",
	ROLE_STORED_FIELDS: "StoredFields format",
	ROLE_TERM_VECTORS:  "TermVectors format",
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Role(%d)", int(r))
}

// Human readable label, e.g. "Postings format".
func (r Role) Label() string {
	return roleLabels[r]
}

// Absent component, for codecs predating a role.
const NO_FORMAT = "(none)"

/*
Describes a codec: its name, the identifier of its implementation and
the implementation identifier of each of its sub-formats.

Note, the name is written into the index. In order for a segment to be
described, the name must resolve to a descriptor registered through
RegisterCodec(), which codec packages do from their init().
*/
type CodecDescriptor struct {
	Name       string
	ClassName  string
	Components map[Role]string
	// Extension of the live docs file, without the dot.
	LiveDocsExtension string
}

// Returns a deep copy, so that callers cannot alter the registry.
func (d *CodecDescriptor) Clone() *CodecDescriptor {
	ans := *d
	ans.Components = make(map[Role]string, len(d.Components))
	for role, id := range d.Components {
		ans.Components[role] = id
	}
	return &ans
}

// Returns the identifier of the role's implementation, or NO_FORMAT.
func (d *CodecDescriptor) Component(role Role) string {
	if id, ok := d.Components[role]; ok && id != "" {
		return id
	}
	return NO_FORMAT
}

type Row struct {
	Label string
	Value string
}

/*
Returns the labelled detail list: codec name, codec class name, then
one row per role in display order.
*/
func (d *CodecDescriptor) Rows() []Row {
	rows := make([]Row, 0, 2+len(Roles))
	rows = append(rows, Row{"Codec name", d.Name}, Row{"Codec class name", d.ClassName})
	for _, role := range Roles {
		rows = append(rows, Row{role.Label(), d.Component(role)})
	}
	return rows
}

func (d *CodecDescriptor) String() string {
	return d.Name
}

type UnknownCodecError struct {
	Name string
}

func (err *UnknownCodecError) Error() string {
	return fmt.Sprintf("unknown codec: %v (available: %v)", err.Name, AvailableCodecs())
}

var allCodecs = make(map[string]*CodecDescriptor)

// workaround Lucene Java's SPI mechanism. Only called from init().
func RegisterCodec(codecs ...*CodecDescriptor) {
	for _, codec := range codecs {
		assert2(codec.Name != "", "codec name must not be empty")
		log.Debugf("Found codec: %v", codec.Name)
		allCodecs[codec.Name] = codec
	}
}

// looks up a codec by name
func Describe(name string) (*CodecDescriptor, error) {
	c, ok := allCodecs[name]
	if !ok {
		return nil, &UnknownCodecError{name}
	}
	return c.Clone(), nil
}

// returns a sorted list of all available codec names
func AvailableCodecs() []string {
	ans := make([]string, 0, len(allCodecs))
	for name := range allCodecs {
		ans = append(ans, name)
	}
	slices.Sort(ans)
	return ans
}

func assert2(ok bool, msg string, args ...interface{}) {
	if !ok {
		panic(fmt.Sprintf(msg, args...))
	}
}
