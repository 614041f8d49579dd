package network

// Mode is the vehicle type serving a line or connection.
type Mode string

const (
	ModeTrain Mode = "train"
	ModeBus   Mode = "bus"
)

// Valid reports whether m is one of the supported modes.
func (m Mode) Valid() bool {
	return m == ModeTrain || m == ModeBus
}

// Station is a stop in the network.
type Station struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Zone int    `json:"zone"`
}

// Line is a named service (train line, bus route).
type Line struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Mode Mode   `json:"mode"`
}

// Connection is a directed hop between two stations on one line.
// An empty Mode inherits the line's mode when the network is built.
type Connection struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Line    string `json:"line"`
	Mode    Mode   `json:"mode"`
	Minutes int    `json:"minutes"`
}

// Config is the raw material for New.
type Config struct {
	Stations    []Station
	Lines       []Line
	Connections []Connection
}

type edgeKey struct {
	from, to, line string
}

// Reverse returns the same hop travelled in the opposite direction.
func (c Connection) Reverse() Connection {
	c.From, c.To = c.To, c.From
	return c
}
