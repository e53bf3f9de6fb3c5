// Package data embeds the default rule and facet tables.
package data

import _ "embed"

// Rules is the default normalization rule table (see rule.Read).
//
//go:embed rules.tsv
var Rules []byte

// Facets is the default time facet table (see facet.Read).
//
//go:embed facets.tsv
var Facets []byte
