// Package config loads and validates everything the engine is configured
// with: the network file (stations, lines, connections and fares), the legacy
// three-file data directory, standalone fares files, and the layered
// application settings of the transitfare command.
//
// Data files are parsed with yaml.v3 (JSON is valid YAML) and validated with
// struct tags. Any violation is reported as errs.ErrInvalidConfig and nothing
// is partially loaded.
package config
