package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultManifestName is the file looked up when no explicit manifest
// path is given.
const DefaultManifestName = "roadman.yml"

// Manifest represents the parsed contents of roadman.yml.
type Manifest struct {
	Path      string
	Name      string
	Version   string
	Authors   []string
	Main      string
	Transpile TranspileSpec
}

// TranspileSpec configures the JavaScript output of the transpile
// command. Out is relative to the manifest directory unless absolute.
type TranspileSpec struct {
	Out string
}

// ValidationError aggregates manifest validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "manifest: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("manifest validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// ErrManifestNotFound reports that no roadman.yml exists at or above the
// starting directory.
var ErrManifestNotFound = errors.New("manifest: roadman.yml not found")

// LoadManifest parses roadman.yml from disk, returning a validated manifest.
func LoadManifest(path string) (*Manifest, error) {
	if path == "" {
		return nil, fmt.Errorf("manifest: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("manifest: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw manifestFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("manifest: %s is empty", absPath)
		}
		return nil, fmt.Errorf("manifest: parse %s: %w", absPath, err)
	}

	manifest := raw.toManifest(absPath)
	if err := manifest.validate(); err != nil {
		return nil, err
	}
	return manifest, nil
}

// FindManifest walks from dir toward the filesystem root looking for
// roadman.yml and loads the first one it finds.
func FindManifest(dir string) (*Manifest, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("manifest: resolve %s: %w", dir, err)
	}
	for {
		candidate := filepath.Join(abs, DefaultManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return LoadManifest(candidate)
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return nil, ErrManifestNotFound
		}
		abs = parent
	}
}

// MainPath resolves the manifest's main entrypoint relative to the
// manifest directory.
func (m *Manifest) MainPath() string {
	return m.resolve(m.Main)
}

// TranspileOutPath resolves the transpile output path. When the manifest
// leaves it unset, the main entrypoint's name with a .js extension is used.
func (m *Manifest) TranspileOutPath() string {
	if m.Transpile.Out != "" {
		return m.resolve(m.Transpile.Out)
	}
	main := m.MainPath()
	return strings.TrimSuffix(main, filepath.Ext(main)) + ".js"
}

func (m *Manifest) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(filepath.Dir(m.Path), path)
}

var namePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_\-]*$`)

func (m *Manifest) validate() error {
	var errs ValidationError
	if m.Name == "" {
		errs.Issues = append(errs.Issues, "name must be provided")
	} else if !namePattern.MatchString(m.Name) {
		errs.Issues = append(errs.Issues, fmt.Sprintf("name %q must start with a letter and use only letters, digits, '_' or '-'", m.Name))
	}
	if m.Main == "" {
		errs.Issues = append(errs.Issues, "main must name the entry script")
	}
	for i, author := range m.Authors {
		if author == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("authors[%d] must be a non-empty string", i))
		}
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

type manifestFile struct {
	Name      string        `yaml:"name"`
	Version   string        `yaml:"version"`
	Authors   stringList    `yaml:"authors"`
	Main      string        `yaml:"main"`
	Transpile transpileYAML `yaml:"transpile"`
}

type transpileYAML struct {
	Out string `yaml:"out"`
}

type stringList []string

func (mf manifestFile) toManifest(path string) *Manifest {
	return &Manifest{
		Path:    path,
		Name:    strings.TrimSpace(mf.Name),
		Version: strings.TrimSpace(mf.Version),
		Authors: mf.Authors.Clone(),
		Main:    strings.TrimSpace(mf.Main),
		Transpile: TranspileSpec{
			Out: strings.TrimSpace(mf.Transpile.Out),
		},
	}
}

func (l stringList) Clone() []string {
	if len(l) == 0 {
		return nil
	}
	out := make([]string, 0, len(l))
	for _, item := range l {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}

func (l *stringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" || strings.TrimSpace(value.Value) == "" {
			*l = nil
			return nil
		}
		*l = stringList{strings.TrimSpace(value.Value)}
		return nil
	case yaml.SequenceNode:
		items := make([]string, 0, len(value.Content))
		for _, node := range value.Content {
			var str string
			if err := node.Decode(&str); err != nil {
				return err
			}
			str = strings.TrimSpace(str)
			if str == "" {
				continue
			}
			items = append(items, str)
		}
		*l = stringList(items)
		return nil
	case yaml.AliasNode:
		return l.UnmarshalYAML(value.Alias)
	case 0:
		*l = nil
		return nil
	default:
		return fmt.Errorf("manifest: expected string or sequence for list but found %s", value.ShortTag())
	}
}
