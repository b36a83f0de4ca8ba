package teams

import (
	"context"
	_ "embed"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/AC350144/ClutchCall/pkg/models"
	"gopkg.in/yaml.v3"
)

//go:embed teams.yaml
var fixture []byte

type directoryFile struct {
	Teams   []models.TeamStats `yaml:"teams"`
	Aliases []struct {
		Alias string `yaml:"alias"`
		Team  string `yaml:"team"`
	} `yaml:"aliases"`
}

type alias struct {
	name    string
	team    string
	pattern *regexp.Regexp
}

// Directory is the in-process team table: official names, abbreviations and
// common nicknames. Call Init before use; Lookup also initializes lazily.
type Directory struct {
	raw []byte

	once    sync.Once
	initErr error

	byName  map[string]models.TeamStats // normalized official name
	byAbbr  map[string]string           // lowercase abbreviation -> official name
	aliases []alias
}

// NewDirectory returns a directory backed by the embedded season snapshot
func NewDirectory() *Directory {
	return &Directory{raw: fixture}
}

// NewDirectoryFromYAML returns a directory backed by the given document
func NewDirectoryFromYAML(data []byte) *Directory {
	return &Directory{raw: data}
}

// Init parses the team table. It runs once; later calls return the first result.
func (d *Directory) Init() error {
	d.once.Do(func() {
		d.initErr = d.load()
	})
	return d.initErr
}

func (d *Directory) load() error {
	var file directoryFile
	if err := yaml.Unmarshal(d.raw, &file); err != nil {
		return fmt.Errorf("parsing team directory: %w", err)
	}

	d.byName = make(map[string]models.TeamStats, len(file.Teams))
	d.byAbbr = make(map[string]string, len(file.Teams))
	for _, team := range file.Teams {
		if team.Team == "" {
			return fmt.Errorf("team directory: entry with no name")
		}
		d.byName[normalize(team.Team)] = team
		if team.Abbreviation != "" {
			d.byAbbr[strings.ToLower(team.Abbreviation)] = team.Team
		}
	}

	d.aliases = make([]alias, 0, len(file.Aliases))
	for _, a := range file.Aliases {
		name := normalize(a.Alias)
		if _, ok := d.byName[normalize(a.Team)]; !ok {
			return fmt.Errorf("team directory: alias %q points at unknown team %q", a.Alias, a.Team)
		}
		d.aliases = append(d.aliases, alias{
			name:    name,
			team:    a.Team,
			pattern: regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\b`),
		})
	}

	return nil
}

// Resolve maps a name, nickname or abbreviation to the official team name.
// Exact matches win; otherwise the first nickname contained in the name is used.
func (d *Directory) Resolve(name string) (string, bool) {
	if d.Init() != nil {
		return "", false
	}

	key := normalize(name)
	if key == "" {
		return "", false
	}

	if team, ok := d.byName[key]; ok {
		return team.Team, true
	}
	if team, ok := d.byAbbr[key]; ok {
		return team, true
	}
	for _, a := range d.aliases {
		if a.name == key {
			return a.team, true
		}
	}
	for _, a := range d.aliases {
		if a.pattern.MatchString(key) {
			return a.team, true
		}
	}

	return "", false
}

// TeamsIn returns the official names of teams mentioned in text, in the
// order their nicknames are listed, without duplicates.
func (d *Directory) TeamsIn(text string) []string {
	if d.Init() != nil {
		return nil
	}

	lower := strings.ToLower(text)
	seen := make(map[string]bool)

	var found []string
	for _, a := range d.aliases {
		if seen[a.team] || !a.pattern.MatchString(lower) {
			continue
		}
		seen[a.team] = true
		found = append(found, a.team)
	}
	return found
}

// Lookup implements Lookup
func (d *Directory) Lookup(_ context.Context, name string) (*models.TeamStats, error) {
	if err := d.Init(); err != nil {
		return nil, err
	}

	official, ok := d.Resolve(name)
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrTeamNotFound)
	}

	stats := d.byName[normalize(official)]
	return &stats, nil
}
