package lucene50

import (
	. "github.com/balzaczyy/goluke/core/codec/spi"
)

// lucene50/Lucene50LiveDocsFormat.java

// extension of live docs
const LIVE_DOCS_EXTENSION = "liv"

/*
Codecs from 5.0 on. Each entry lists only the formats that changed
since the previous release; everything else is inherited.
*/
var releases = []struct {
	name    string
	changed map[Role]string
}{
	{"Lucene50", map[Role]string{
		ROLE_COMPOUND:      "Lucene50CompoundFormat",
		ROLE_DOC_VALUES:    "PerFieldDocValuesFormat(Lucene50)",
		ROLE_FIELD_INFOS:   "Lucene50FieldInfosFormat",
		ROLE_LIVE_DOCS:     "Lucene50LiveDocsFormat",
		ROLE_NORMS:         "Lucene50NormsFormat",
		ROLE_POSTINGS:      "PerFieldPostingsFormat(Lucene50)",
		ROLE_SEGMENT_INFO:  "Lucene50SegmentInfoFormat",
		ROLE_STORED_FIELDS: "Lucene50StoredFieldsFormat",
		ROLE_TERM_VECTORS:  "Lucene50TermVectorsFormat",
	}},
	{"Lucene53", map[Role]string{
		ROLE_NORMS: "Lucene53NormsFormat",
	}},
	{"Lucene54", map[Role]string{
		ROLE_DOC_VALUES: "PerFieldDocValuesFormat(Lucene54)",
	}},
	{"Lucene60", map[Role]string{
		ROLE_FIELD_INFOS: "Lucene60FieldInfosFormat",
		ROLE_POINTS:      "Lucene60PointsFormat",
	}},
	{"Lucene62", map[Role]string{
		ROLE_SEGMENT_INFO: "Lucene62SegmentInfoFormat",
	}},
	{"Lucene70", map[Role]string{
		ROLE_DOC_VALUES:   "PerFieldDocValuesFormat(Lucene70)",
		ROLE_NORMS:        "Lucene70NormsFormat",
		ROLE_SEGMENT_INFO: "Lucene70SegmentInfoFormat",
	}},
	{"Lucene80", map[Role]string{
		ROLE_DOC_VALUES: "PerFieldDocValuesFormat(Lucene80)",
		ROLE_NORMS:      "Lucene80NormsFormat",
	}},
	{"Lucene84", map[Role]string{
		ROLE_POSTINGS: "PerFieldPostingsFormat(Lucene84)",
	}},
	{"Lucene87", map[Role]string{
		ROLE_STORED_FIELDS: "Lucene87StoredFieldsFormat",
	}},
	{"Lucene90", map[Role]string{
		ROLE_COMPOUND:      "Lucene90CompoundFormat",
		ROLE_DOC_VALUES:    "PerFieldDocValuesFormat(Lucene90)",
		ROLE_FIELD_INFOS:   "Lucene90FieldInfosFormat",
		ROLE_LIVE_DOCS:     "Lucene90LiveDocsFormat",
		ROLE_NORMS:         "Lucene90NormsFormat",
		ROLE_POINTS:        "Lucene90PointsFormat",
		ROLE_POSTINGS:      "PerFieldPostingsFormat(Lucene90)",
		ROLE_SEGMENT_INFO:  "Lucene90SegmentInfoFormat",
		ROLE_STORED_FIELDS: "Lucene90StoredFieldsFormat",
		ROLE_TERM_VECTORS:  "Lucene90TermVectorsFormat",
	}},
	{"Lucene91", nil},
	{"Lucene92", nil},
	{"Lucene94", map[Role]string{
		ROLE_FIELD_INFOS: "Lucene94FieldInfosFormat",
	}},
	{"Lucene95", nil},
	{"Lucene99", map[Role]string{
		ROLE_POSTINGS:     "PerFieldPostingsFormat(Lucene99)",
		ROLE_SEGMENT_INFO: "Lucene99SegmentInfoFormat",
	}},
}

func init() {
	components := make(map[Role]string)
	for _, r := range releases {
		for role, id := range r.changed {
			components[role] = id
		}
		RegisterCodec(newCodec(r.name, components))
	}
}

func newCodec(name string, components map[Role]string) *CodecDescriptor {
	ans := &CodecDescriptor{
		Name:              name,
		ClassName:         "lucene" + name[len("Lucene"):] + "." + name + "Codec",
		Components:        make(map[Role]string, len(components)),
		LiveDocsExtension: LIVE_DOCS_EXTENSION,
	}
	for role, id := range components {
		ans.Components[role] = id
	}
	return ans
}
