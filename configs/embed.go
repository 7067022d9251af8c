// Package configs embeds the year configurations shipped with the binary.
package configs

import "embed"

// YearsDir is the directory of Years holding one "<year>.yaml" document per filing year
const YearsDir = "years"

// Years holds the built-in year configurations
//
//go:embed years/*.yaml
var Years embed.FS
