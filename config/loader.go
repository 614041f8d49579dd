package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/theoremus-urban-solutions/transit-fares/errs"
	"github.com/theoremus-urban-solutions/transit-fares/fare"
	"github.com/theoremus-urban-solutions/transit-fares/internal"
	"github.com/theoremus-urban-solutions/transit-fares/network"
)

// Legacy data directory file names.
const (
	LegacyStationsFile = "stations.json"
	LegacyEdgesFile    = "edges.json"
	LegacyFaresFile    = "fares.json"
)

// decodeStrict unmarshals YAML or JSON, rejecting unknown fields.
func decodeStrict(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// ParseNetworkFile decodes and validates a network file.
func ParseNetworkFile(data []byte) (*NetworkFile, error) {
	var f NetworkFile
	if err := decodeStrict(data, &f); err != nil {
		return nil, errs.InvalidConfig("network file: %v", err)
	}
	if err := validateStruct("network file", f); err != nil {
		return nil, err
	}
	return &f, nil
}

// ReadNetworkFile reads a YAML or JSON network file from path.
func ReadNetworkFile(path string) (*NetworkFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read network file: %w", err)
	}
	f, err := ParseNetworkFile(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// ReadFaresFile reads a standalone fares file. Both the network file's fares
// section layout and the legacy fares.json layout are accepted.
func ReadFaresFile(path string) (*FaresSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fares file: %w", err)
	}
	var probe map[string]any
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("%s: %w", path, errs.InvalidConfig("fares file: %v", err))
	}
	if _, ok := probe["zone_fares"]; ok {
		fs, err := parseLegacyFares(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return fs, nil
	}
	var fs FaresSpec
	if err := decodeStrict(data, &fs); err != nil {
		return nil, fmt.Errorf("%s: %w", path, errs.InvalidConfig("fares file: %v", err))
	}
	if err := validateStruct("fares file", fs); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &fs, nil
}

// WriteNetworkFile writes f as YAML.
func WriteNetworkFile(path string, f *NetworkFile) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("encode network file: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode network file: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

// ReadLegacyDir reads a stations.json / edges.json / fares.json directory.
// Every edge is bidirectional and lines are derived from edge line names,
// taking the mode of the first edge seen on each line.
func ReadLegacyDir(dir string) (*NetworkFile, error) {
	read := func(name string, out any) error {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		if err := yaml.Unmarshal(data, out); err != nil {
			return fmt.Errorf("%s: %w", name, errs.InvalidConfig("%v", err))
		}
		return nil
	}

	var stations []legacyStation
	if err := read(LegacyStationsFile, &stations); err != nil {
		return nil, err
	}
	var edges []legacyEdge
	if err := read(LegacyEdgesFile, &edges); err != nil {
		return nil, err
	}
	faresData, err := os.ReadFile(filepath.Join(dir, LegacyFaresFile))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", LegacyFaresFile, err)
	}
	fares, err := parseLegacyFares(faresData)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", LegacyFaresFile, err)
	}

	f := &NetworkFile{Fares: fares}
	for i, s := range stations {
		if err := validateStruct(fmt.Sprintf("%s[%d]", LegacyStationsFile, i), s); err != nil {
			return nil, err
		}
		f.Stations = append(f.Stations, StationSpec(s))
	}
	if len(f.Stations) == 0 {
		return nil, errs.InvalidConfig("%s has no stations", LegacyStationsFile)
	}

	lineIdx := map[string]int{}
	for i, e := range edges {
		if err := validateStruct(fmt.Sprintf("%s[%d]", LegacyEdgesFile, i), e); err != nil {
			return nil, err
		}
		mode := legacyMode(e.Mode)
		if _, ok := lineIdx[e.Line]; !ok {
			lineIdx[e.Line] = len(f.Lines)
			f.Lines = append(f.Lines, LineSpec{ID: e.Line, Name: e.Line, Mode: string(mode)})
		}
		f.Connections = append(f.Connections, ConnectionSpec{
			From:          e.From,
			To:            e.To,
			Line:          e.Line,
			Minutes:       e.Minutes,
			Bidirectional: true,
			Mode:          string(mode),
		})
	}
	internal.Debugf("legacy data %s: %d stations, %d lines, %d edges", dir, len(f.Stations), len(f.Lines), len(f.Connections))
	return f, nil
}

// legacyMode maps free-form legacy modes ("Train", "Bus", "SeaBus") onto the
// two modes the engine prices; anything that is not a train is a bus.
func legacyMode(s string) network.Mode {
	if strings.EqualFold(strings.TrimSpace(s), string(network.ModeTrain)) {
		return network.ModeTrain
	}
	return network.ModeBus
}

func parseLegacyFares(data []byte) (*FaresSpec, error) {
	var lf legacyFares
	if err := yaml.Unmarshal(data, &lf); err != nil {
		return nil, errs.InvalidConfig("fares: %v", err)
	}
	if err := validateStruct("fares", lf); err != nil {
		return nil, err
	}
	return &FaresSpec{
		Zones:                 lf.ZoneFares,
		BusFlat:               lf.BusFlatFare,
		TransferWindowMinutes: lf.TransferWindowMinutes,
	}, nil
}

// NetworkConfig converts f to a network.Config, expanding bidirectional connections.
func (f *NetworkFile) NetworkConfig() network.Config {
	cfg := network.Config{
		Stations:    make([]network.Station, 0, len(f.Stations)),
		Lines:       make([]network.Line, 0, len(f.Lines)),
		Connections: make([]network.Connection, 0, len(f.Connections)),
	}
	for _, s := range f.Stations {
		cfg.Stations = append(cfg.Stations, network.Station{ID: s.ID, Name: s.Name, Zone: s.Zone})
	}
	for _, l := range f.Lines {
		name := l.Name
		if name == "" {
			name = l.ID
		}
		cfg.Lines = append(cfg.Lines, network.Line{ID: l.ID, Name: name, Mode: network.Mode(l.Mode)})
	}
	for _, c := range f.Connections {
		conn := network.Connection{From: c.From, To: c.To, Line: c.Line, Mode: network.Mode(c.Mode), Minutes: c.Minutes}
		cfg.Connections = append(cfg.Connections, conn)
		if c.Bidirectional {
			cfg.Connections = append(cfg.Connections, conn.Reverse())
		}
	}
	return cfg
}

// Policy converts the fares section to a fare.Policy.
func (fs *FaresSpec) Policy() (fare.Policy, error) {
	prices := make(map[int]fare.Money, len(fs.Zones))
	keys := make([]string, 0, len(fs.Zones))
	for k := range fs.Zones {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		n, err := strconv.Atoi(strings.TrimSpace(k))
		if err != nil {
			return fare.Policy{}, errs.InvalidConfig("fare zone count %q is not an integer", k)
		}
		if _, dup := prices[n]; dup {
			return fare.Policy{}, errs.InvalidConfig("fare zone count %d listed twice", n)
		}
		prices[n] = fare.FromUnits(fs.Zones[k])
	}
	table, err := fare.NewTable(prices)
	if err != nil {
		return fare.Policy{}, err
	}
	return fare.Policy{
		Table:        table,
		BusFlat:      fare.FromUnits(fs.BusFlat),
		Window:       time.Duration(fs.TransferWindowMinutes) * time.Minute,
		WindowPolicy: fare.WindowPolicy(fs.WindowPolicy),
	}, nil
}

// Build validates f into a network and a fare engine. fares, when non-nil,
// replaces the file's own fares section; app overrides the transfer window
// and window policy when set.
func Build(f *NetworkFile, fares *FaresSpec, app AppConfig) (*network.Network, *fare.Engine, error) {
	net, err := network.New(f.NetworkConfig())
	if err != nil {
		return nil, nil, err
	}
	if fares == nil {
		fares = f.Fares
	}
	if fares == nil {
		return nil, nil, errs.InvalidConfig("no fares: add a fares section or pass a fares file")
	}
	policy, err := fares.Policy()
	if err != nil {
		return nil, nil, err
	}
	if app.TransferWindowMinutes > 0 {
		policy.Window = time.Duration(app.TransferWindowMinutes) * time.Minute
	}
	if app.WindowPolicy != "" {
		policy.WindowPolicy = fare.WindowPolicy(app.WindowPolicy)
	}
	engine, err := fare.NewEngine(policy)
	if err != nil {
		return nil, nil, err
	}
	internal.Infof("network loaded: %d stations, %d lines, %d connections, window %s (%s)",
		net.StationCount(), net.LineCount(), net.ConnectionCount(), engine.Policy().Window, engine.Policy().WindowPolicy)
	return net, engine, nil
}

// LoadNetwork reads app.Network (a network file or a legacy data directory)
// and app.Fares (optional), then builds them.
func LoadNetwork(app AppConfig) (*network.Network, *fare.Engine, error) {
	if app.Network == "" {
		return nil, nil, errs.InvalidConfig("no network configured")
	}
	f, err := ReadNetworkSource(app.Network)
	if err != nil {
		return nil, nil, err
	}
	var fares *FaresSpec
	if app.Fares != "" {
		if fares, err = ReadFaresFile(app.Fares); err != nil {
			return nil, nil, err
		}
	}
	return Build(f, fares, app)
}

// ReadNetworkSource reads a network file, or a legacy data directory when
// path is a directory.
func ReadNetworkSource(path string) (*NetworkFile, error) {
	st, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("network source: %w", err)
	}
	if st.IsDir() {
		return ReadLegacyDir(path)
	}
	return ReadNetworkFile(path)
}
