// Package atlases embeds the BIDS atlas descriptors for compile-time inclusion.
// Each descriptor is an atlas-<Name>_dseg.json file describing one cortical
// parcellation: its spatial reference surfaces, surface density, and the
// community label tables that group its parcels into higher-level classes.
//
// Usage:
//
//	parcellation.LoadRegistry(atlases.FS, ".")
package atlases

import "embed"

//go:embed atlas-*_dseg.json
var FS embed.FS
