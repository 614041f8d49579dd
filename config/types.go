package config

// StationSpec is a station entry of a network file.
type StationSpec struct {
	ID   string `yaml:"id" json:"id" validate:"required"`
	Name string `yaml:"name" json:"name" validate:"required"`
	Zone int    `yaml:"zone" json:"zone" validate:"gte=1"`
}

// LineSpec is a line entry of a network file.
type LineSpec struct {
	ID   string `yaml:"id" json:"id" validate:"required"`
	Name string `yaml:"name" json:"name"`
	Mode string `yaml:"mode" json:"mode" validate:"required,oneof=train bus"`
}

// ConnectionSpec is a directed connection; Bidirectional adds the reverse.
// An empty Mode inherits the line's mode.
type ConnectionSpec struct {
	From          string `yaml:"from" json:"from" validate:"required"`
	To            string `yaml:"to" json:"to" validate:"required"`
	Line          string `yaml:"line" json:"line" validate:"required"`
	Minutes       int    `yaml:"minutes" json:"minutes" validate:"gte=0"`
	Bidirectional bool   `yaml:"bidirectional,omitempty" json:"bidirectional,omitempty"`
	Mode          string `yaml:"mode,omitempty" json:"mode,omitempty" validate:"omitempty,oneof=train bus"`
}

// FaresSpec is the fare policy. Zones maps a zone count ("1", "2", ...) to a
// price in currency units.
type FaresSpec struct {
	Zones                 map[string]float64 `yaml:"zones" json:"zones" validate:"required,min=1,dive,keys,numeric,endkeys,gte=0"`
	BusFlat               float64            `yaml:"bus_flat" json:"bus_flat" validate:"gte=0"`
	TransferWindowMinutes int                `yaml:"transfer_window_minutes,omitempty" json:"transfer_window_minutes,omitempty" validate:"gte=0"`
	WindowPolicy          string             `yaml:"window_policy,omitempty" json:"window_policy,omitempty" validate:"omitempty,oneof=anchored extend"`
}

// NetworkFile is the root of a network file. Fares may live in a separate
// fares file, in which case the section is omitted.
type NetworkFile struct {
	Stations    []StationSpec    `yaml:"stations" json:"stations" validate:"required,min=1,dive"`
	Lines       []LineSpec       `yaml:"lines" json:"lines" validate:"dive"`
	Connections []ConnectionSpec `yaml:"connections" json:"connections" validate:"dive"`
	Fares       *FaresSpec       `yaml:"fares,omitempty" json:"fares,omitempty"`
}

// legacy data directory layout

type legacyStation struct {
	ID   string `yaml:"id" validate:"required"`
	Name string `yaml:"name" validate:"required"`
	Zone int    `yaml:"zone" validate:"gte=1"`
}

type legacyEdge struct {
	From    string `yaml:"from" validate:"required"`
	To      string `yaml:"to" validate:"required"`
	Minutes int    `yaml:"minutes" validate:"gte=0"`
	Line    string `yaml:"line" validate:"required"`
	Mode    string `yaml:"mode"`
}

type legacyFares struct {
	ZoneFares             map[string]float64 `yaml:"zone_fares" validate:"required,min=1,dive,keys,numeric,endkeys,gte=0"`
	BusFlatFare           float64            `yaml:"bus_flat_fare" validate:"gte=0"`
	TransferWindowMinutes int                `yaml:"transfer_window_minutes" validate:"gte=0"`
}

// AppConfig holds the settings of the transitfare command.
type AppConfig struct {
	Network               string `koanf:"network"`
	Fares                 string `koanf:"fares"`
	GTFSCache             string `koanf:"gtfs_cache"`
	LogLevel              string `koanf:"log_level" validate:"oneof=debug info warn error"`
	RouteCacheSize        int    `koanf:"route_cache_size" validate:"gte=0"`
	TransferWindowMinutes int    `koanf:"transfer_window_minutes" validate:"gte=0"`
	WindowPolicy          string `koanf:"window_policy" validate:"omitempty,oneof=anchored extend"`
	Output                string `koanf:"output" validate:"oneof=table json"`
	Listen                string `koanf:"listen" validate:"required"`
}
