package dashboard

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/alnah/mission-control/internal/yamlutil"
)

// Files and directories of a data directory.
const (
	ActivitiesFile = "activities.json"
	ScheduleFile   = "scheduled.json"
	ClaimsFile     = "claims.json"
	ExplainersDir  = "explainers"
)

var explainerIDPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

//go:embed defaults
var defaults embed.FS

// DefaultFS returns the bundled dataset.
func DefaultFS() fs.FS {
	sub, err := fs.Sub(defaults, "defaults")
	if err != nil {
		panic(err) // the embed directive guarantees the directory
	}
	return sub
}

// ValidExplainerID reports whether id can name an explainer file.
func ValidExplainerID(id string) bool {
	return explainerIDPattern.MatchString(id)
}

// LoadDataset reads every data file from fsys. activities.json and
// scheduled.json are required; claims.json and the explainers directory
// are optional. Errors name the offending file.
func LoadDataset(fsys fs.FS) (*Dataset, error) {
	ds := &Dataset{LoadedAt: time.Now()}

	if err := decodeJSONFile(fsys, ActivitiesFile, true, &ds.Activities); err != nil {
		return nil, err
	}
	if err := decodeJSONFile(fsys, ScheduleFile, true, &ds.Schedule); err != nil {
		return nil, err
	}
	if err := decodeJSONFile(fsys, ClaimsFile, false, &ds.Claims); err != nil {
		return nil, err
	}

	explainers, err := loadExplainers(fsys)
	if err != nil {
		return nil, err
	}
	ds.Explainers = explainers

	ds.normalize()
	return ds, nil
}

func decodeJSONFile(fsys fs.FS, name string, required bool, v any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if required {
				return fmt.Errorf("%w: %s", ErrMissingData, name)
			}
			return nil
		}
		return fmt.Errorf("reading %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidData, name, err)
	}
	return nil
}

// explainerMeta is the front matter of an explainer file.
type explainerMeta struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Icon        string `yaml:"icon"`
	Order       int    `yaml:"order"`
}

func loadExplainers(fsys fs.FS) ([]Explainer, error) {
	matches, err := fs.Glob(fsys, ExplainersDir+"/*.md")
	if err != nil {
		return nil, fmt.Errorf("listing explainers: %w", err)
	}

	explainers := make([]Explainer, 0, len(matches))
	for _, name := range matches {
		id := strings.TrimSuffix(path.Base(name), ".md")
		if !ValidExplainerID(id) {
			return nil, fmt.Errorf("%w: %s: %q", ErrInvalidData, name, id)
		}
		src, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		e, err := ParseExplainer(id, src)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidData, name, err)
		}
		explainers = append(explainers, e)
	}

	sort.SliceStable(explainers, func(i, j int) bool {
		if explainers[i].Order != explainers[j].Order {
			return explainers[i].Order < explainers[j].Order
		}
		return explainers[i].ID < explainers[j].ID
	})
	return explainers, nil
}

// ParseExplainer reads an explainer document. Front matter is optional;
// without it the title falls back to the id.
func ParseExplainer(id string, src []byte) (Explainer, error) {
	var meta explainerMeta
	body, err := yamlutil.DecodeFrontMatter(src, &meta)
	if err != nil && !errors.Is(err, yamlutil.ErrNoFrontMatter) {
		return Explainer{}, err
	}

	e := Explainer{
		ID:          id,
		Title:       meta.Title,
		Description: meta.Description,
		Icon:        meta.Icon,
		Order:       meta.Order,
		Content:     string(body),
	}
	if e.Title == "" {
		e.Title = id
	}
	return e, nil
}

// normalize replaces nil lists with empty ones so JSON output always has
// arrays.
func (d *Dataset) normalize() {
	if d.Activities == nil {
		d.Activities = []Activity{}
	}
	if d.Schedule.Recurring == nil {
		d.Schedule.Recurring = []RecurringTask{}
	}
	if d.Schedule.OneTime == nil {
		d.Schedule.OneTime = []OneTimeTask{}
	}
	if d.Claims == nil {
		d.Claims = []Claim{}
	}
	for i := range d.Claims {
		if d.Claims[i].Verification.Sources == nil {
			d.Claims[i].Verification.Sources = []SourceCheck{}
		}
	}
}

// FindExplainer returns the explainer with the given id.
func (d *Dataset) FindExplainer(id string) (Explainer, error) {
	for _, e := range d.Explainers {
		if e.ID == id {
			return e, nil
		}
	}
	return Explainer{}, fmt.Errorf("%w: %q", ErrExplainerNotFound, id)
}

// ExplainerIDs lists explainer ids in display order.
func (d *Dataset) ExplainerIDs() []string {
	ids := make([]string, len(d.Explainers))
	for i, e := range d.Explainers {
		ids[i] = e.ID
	}
	return ids
}
