// Package channelcatalog carries the static description of the supported
// payment channels, with display names in the languages the dashboard and
// checkout page serve.
package channelcatalog

import (
	_ "embed"
	"fmt"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	vo "ta7wila/internal/domain/payment/valueobjects"
)

//go:embed channels.yaml
var channelsYAML []byte

// Entry describes one payment channel.
type Entry struct {
	Key   vo.ChannelKey     `yaml:"key"`
	Kind  string            `yaml:"kind"`
	Names map[string]string `yaml:"names"`
}

// DisplayName resolves the channel name for a matched language tag, falling
// back to English.
func (e Entry) DisplayName(tag language.Tag) string {
	base, _ := tag.Base()
	if name, ok := e.Names[base.String()]; ok {
		return name
	}
	return e.Names["en"]
}

type Catalog struct {
	entries []Entry
	byKey   map[vo.ChannelKey]Entry
	matcher language.Matcher
}

// Load parses the embedded catalog. Every valid channel key must be present.
func Load() (*Catalog, error) {
	var doc struct {
		Channels []Entry `yaml:"channels"`
	}
	if err := yaml.Unmarshal(channelsYAML, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse channel catalog: %w", err)
	}

	byKey := make(map[vo.ChannelKey]Entry, len(doc.Channels))
	for _, entry := range doc.Channels {
		if !entry.Key.IsValid() {
			return nil, fmt.Errorf("unknown channel key in catalog: %s", entry.Key)
		}
		if entry.Names["en"] == "" {
			return nil, fmt.Errorf("channel %s is missing an English name", entry.Key)
		}
		byKey[entry.Key] = entry
	}

	for _, key := range vo.AllChannelKeys() {
		if _, ok := byKey[key]; !ok {
			return nil, fmt.Errorf("channel %s is missing from the catalog", key)
		}
	}

	return &Catalog{
		entries: doc.Channels,
		byKey:   byKey,
		matcher: language.NewMatcher([]language.Tag{
			language.English,
			language.Arabic,
		}),
	}, nil
}

// All returns the catalog entries in declaration order.
func (c *Catalog) All() []Entry {
	return c.entries
}

// Get looks up one channel.
func (c *Catalog) Get(key vo.ChannelKey) (Entry, bool) {
	entry, ok := c.byKey[key]
	return entry, ok
}

// MatchLanguage resolves an Accept-Language header value to a supported
// language tag. Unknown or empty values resolve to English.
func (c *Catalog) MatchLanguage(acceptLanguage string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return language.English
	}
	tag, _, _ := c.matcher.Match(tags...)
	return tag
}
