package index

// Links in the codecs whose segments can be described.
import (
	_ "github.com/balzaczyy/goluke/core/codec/lucene46"
	_ "github.com/balzaczyy/goluke/core/codec/lucene50"
)
