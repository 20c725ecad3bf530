package lucene46

import (
	. "github.com/balzaczyy/goluke/core/codec/spi"
)

// lucene40/Lucene40LiveDocsFormat.java

// Extension of deletes
const DELETES_EXTENSION = "del"

func init() {
	RegisterCodec(
		newCodec("Lucene46", map[Role]string{
			ROLE_DOC_VALUES: "Lucene45DocValuesFormat",
			ROLE_NORMS:      "Lucene42NormsFormat",
		}),
		newCodec("Lucene49", map[Role]string{
			ROLE_DOC_VALUES: "Lucene49DocValuesFormat",
			ROLE_NORMS:      "Lucene49NormsFormat",
		}),
		newCodec("Lucene410", map[Role]string{
			ROLE_DOC_VALUES: "Lucene410DocValuesFormat",
			ROLE_NORMS:      "Lucene49NormsFormat",
		}),
	)
}

/*
Implements the Lucene 4.6 to 4.10 index formats. They share stored
fields, term vectors, field infos, segment info, live docs and
postings; compound files are not a codec format yet and points do not
exist.
*/
func newCodec(name string, overrides map[Role]string) *CodecDescriptor {
	components := map[Role]string{
		ROLE_FIELD_INFOS:   "Lucene46FieldInfosFormat",
		ROLE_LIVE_DOCS:     "Lucene40LiveDocsFormat",
		ROLE_POSTINGS:      "PerFieldPostingsFormat(Lucene41)",
		ROLE_SEGMENT_INFO:  "Lucene46SegmentInfoFormat",
		ROLE_STORED_FIELDS: "Lucene41StoredFieldsFormat",
		ROLE_TERM_VECTORS:  "Lucene42TermVectorsFormat",
	}
	for role, id := range overrides {
		components[role] = id
	}
	return &CodecDescriptor{
		Name:              name,
		ClassName:         "lucene" + name[len("Lucene"):] + "." + name + "Codec",
		Components:        components,
		LiveDocsExtension: DELETES_EXTENSION,
	}
}
