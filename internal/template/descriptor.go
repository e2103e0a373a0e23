package template

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/Masterminds/semver/v3"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.yaml.in/yaml/v3"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/lovekit-dev/lovekit/internal/workspace"
)

// DescriptorFile is the optional metadata file at a template root.
const DescriptorFile = ".lovekit-template.yaml"

//go:embed schema/template.schema.json
var schemaBytes []byte

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
	printer        = message.NewPrinter(language.English)
)

// Descriptor is the parsed content of DescriptorFile.
type Descriptor struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Version     string `yaml:"version,omitempty" json:"version,omitempty"`
	LoveVersion string `yaml:"love_version,omitempty" json:"love_version,omitempty"`
}

// Issue is a single descriptor validation problem.
type Issue struct {
	Path    string // Instance location (e.g., "/version")
	Message string
	Keyword string // Schema keyword that failed, or "semver"
}

func (i Issue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

// Info describes one template directory in a workspace.
type Info struct {
	Name       string
	Path       string
	Descriptor *Descriptor // nil when the template has no descriptor
	Issues     []Issue
}

// getSchema compiles the embedded JSON schema once and returns it.
func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("template.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("template.schema.json")
		if compileErr != nil {
			compileErr = fmt.Errorf("compiling schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// ValidateDescriptor checks raw descriptor YAML against the schema and the
// semver rules for version fields. The error return is reserved for
// unparseable input or schema compilation failures.
func ValidateDescriptor(data []byte) ([]Issue, error) {
	schema, err := getSchema()
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}

	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	if raw == nil {
		raw = map[string]interface{}{}
	}

	jsonData, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("converting to JSON: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("preparing JSON for validation: %w", err)
	}

	var issues []Issue
	if err := schema.Validate(inst); err != nil {
		var ve *jsonschema.ValidationError
		if !errors.As(err, &ve) {
			return nil, fmt.Errorf("unexpected validation error type: %w", err)
		}
		issues = extractIssues(ve)
	}

	// Semver checks only make sense once the shape is right.
	if len(issues) > 0 {
		return issues, nil
	}
	var d Descriptor
	if err := unmarshalDescriptor(data, &d); err != nil {
		return nil, err
	}
	for field, v := range map[string]string{"/version": d.Version, "/love_version": d.LoveVersion} {
		if v == "" {
			continue
		}
		if _, err := semver.NewVersion(v); err != nil {
			issues = append(issues, Issue{Path: field, Message: fmt.Sprintf("%q is not a semantic version", v), Keyword: "semver"})
		}
	}
	sort.Slice(issues, func(i, j int) bool { return issues[i].Path < issues[j].Path })
	return issues, nil
}

func unmarshalDescriptor(data []byte, d *Descriptor) error {
	if err := yaml.Unmarshal(data, d); err != nil {
		return fmt.Errorf("parsing descriptor: %w", err)
	}
	return nil
}

// extractIssues walks the ValidationError tree and returns leaf-level issues.
func extractIssues(ve *jsonschema.ValidationError) []Issue {
	var issues []Issue
	collectIssues(ve, &issues)
	if len(issues) == 0 {
		return []Issue{{Message: ve.Error()}}
	}
	return issues
}

func collectIssues(ve *jsonschema.ValidationError, issues *[]Issue) {
	if len(ve.Causes) > 0 {
		for _, cause := range ve.Causes {
			collectIssues(cause, issues)
		}
		return
	}

	path := ""
	if len(ve.InstanceLocation) > 0 {
		path = "/" + strings.Join(ve.InstanceLocation, "/")
	}

	keyword, msg := "", ""
	if ve.ErrorKind != nil {
		if kwPath := ve.ErrorKind.KeywordPath(); len(kwPath) > 0 {
			keyword = kwPath[len(kwPath)-1]
		}
		msg = ve.ErrorKind.LocalizedString(printer)
	}
	if keyword == "$ref" || keyword == "allOf" {
		return
	}
	*issues = append(*issues, Issue{Path: path, Message: msg, Keyword: keyword})
}

// LoadDescriptor reads and validates the descriptor of the template at dir.
// A missing descriptor yields (nil, nil, nil).
func LoadDescriptor(dir string) (*Descriptor, []Issue, error) {
	data, err := os.ReadFile(filepath.Join(dir, DescriptorFile))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("reading descriptor: %w", err)
	}

	issues, err := ValidateDescriptor(data)
	if err != nil {
		return nil, nil, err
	}

	var d Descriptor
	if err := unmarshalDescriptor(data, &d); err != nil {
		return nil, nil, err
	}
	return &d, issues, nil
}

// List returns the templates under templatesDir sorted by name. A missing
// directory yields an empty list. Descriptor problems are reported per
// template in Info.Issues rather than failing the listing.
func List(templatesDir string) ([]Info, error) {
	entries, err := os.ReadDir(templatesDir)
	if errors.Is(err, os.ErrNotExist) {
		return []Info{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading templates directory: %w", err)
	}

	infos := []Info{}
	for _, e := range entries {
		if !e.IsDir() || workspace.IsStaging(e.Name()) {
			continue
		}
		dir := filepath.Join(templatesDir, e.Name())
		info := Info{Name: e.Name(), Path: dir}

		d, issues, err := LoadDescriptor(dir)
		if err != nil {
			info.Issues = []Issue{{Message: err.Error()}}
		} else {
			info.Descriptor = d
			info.Issues = issues
		}
		infos = append(infos, info)
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos, nil
}

// CompareVersions orders two descriptor versions. Unparseable versions sort
// before parseable ones.
func CompareVersions(a, b string) int {
	va, errA := semver.NewVersion(a)
	vb, errB := semver.NewVersion(b)
	switch {
	case errA != nil && errB != nil:
		return strings.Compare(a, b)
	case errA != nil:
		return -1
	case errB != nil:
		return 1
	}
	return va.Compare(vb)
}
