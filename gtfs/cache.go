package gtfs

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"io"
	"os"

	"github.com/theoremus-urban-solutions/transit-fares/internal"
)

// SerializeFeed encodes a Feed with gob.
func SerializeFeed(feed *Feed) ([]byte, error) {
	var buf bytes.Buffer
	if err := SerializeFeedToWriter(feed, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DeserializeFeed decodes a Feed written by SerializeFeed.
func DeserializeFeed(data []byte) (*Feed, error) {
	return DeserializeFeedFromReader(bytes.NewReader(data))
}

// SerializeFeedToWriter gob-encodes feed to w.
func SerializeFeedToWriter(feed *Feed, w io.Writer) error {
	if err := gob.NewEncoder(w).Encode(feed); err != nil {
		return fmt.Errorf("failed to encode feed: %w", err)
	}
	return nil
}

// DeserializeFeedFromReader decodes a feed written by SerializeFeedToWriter.
func DeserializeFeedFromReader(r io.Reader) (*Feed, error) {
	var feed Feed
	if err := gob.NewDecoder(r).Decode(&feed); err != nil {
		return nil, fmt.Errorf("failed to decode feed: %w", err)
	}
	return &feed, nil
}

// SerializeFeedToFile writes feed to path.
func SerializeFeedToFile(feed *Feed, path string) error {
	data, err := SerializeFeed(feed)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// DeserializeFeedFromFile reads a feed cached by SerializeFeedToFile.
func DeserializeFeedFromFile(path string) (*Feed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read cache file: %w", err)
	}
	return DeserializeFeed(data)
}

// LoadFeed parses zipPath, going through the gob cache at cachePath when it
// is set. A cache older than the zip, or one that fails to decode, is
// rebuilt. Failing to write the cache is logged, not returned.
func LoadFeed(zipPath, cachePath string, opts Options) (*Feed, error) {
	if cachePath != "" && cacheFresh(zipPath, cachePath) {
		feed, err := DeserializeFeedFromFile(cachePath)
		if err == nil {
			internal.Debugf("GTFS cache hit %s", cachePath)
			return feed, nil
		}
		internal.Warnf("GTFS cache %s unusable, reparsing: %v", cachePath, err)
	}

	feed, err := ParseZipFile(zipPath, opts)
	if err != nil {
		return nil, err
	}
	if cachePath != "" {
		if err := SerializeFeedToFile(feed, cachePath); err != nil {
			internal.Warnf("GTFS cache %s not written: %v", cachePath, err)
		}
	}
	return feed, nil
}

func cacheFresh(zipPath, cachePath string) bool {
	cs, err := os.Stat(cachePath)
	if err != nil {
		return false
	}
	zs, err := os.Stat(zipPath)
	if err != nil {
		return false
	}
	return !cs.ModTime().Before(zs.ModTime())
}
