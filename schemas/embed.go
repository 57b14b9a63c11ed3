// Package schemas holds the JSON Schemas for the structured files the CLI writes.
package schemas

import _ "embed"

// RankedResultsFile is the file name of the ranked results schema
const RankedResultsFile = "ranked_results.schema.json"

// RankedResults is the JSON Schema for the json output type
//
//go:embed ranked_results.schema.json
var RankedResults []byte
