package detector

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/abdidvp/moqlint/internal/domain"
)

// ComponentDetector implements domain.ComponentDetector for Moqui projects.
// A file belongs to the nearest enclosing directory that holds a
// component.xml. Without one, a runtime/component/{name}/ path segment names
// the component; anything else falls into a component named after the root.
type ComponentDetector struct {
	descriptors map[string]string
}

func New() *ComponentDetector {
	return &ComponentDetector{}
}

const descriptorFile = "component.xml"

// componentsDir is the directory Moqui loads components from.
const componentsDir = "component"

func (d *ComponentDetector) Detect(root string, files []string) ([]domain.Component, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	d.descriptors = make(map[string]string)

	type builder struct {
		path  string
		kinds map[string]bool
		files []string
	}
	builders := map[string]*builder{}

	for _, f := range files {
		name, dir := d.owner(absRoot, f)
		b, ok := builders[name]
		if !ok {
			b = &builder{path: dir, kinds: map[string]bool{}}
			builders[name] = b
		}
		b.files = append(b.files, f)
		if kind := kindOf(dir, f); kind != "" {
			b.kinds[kind] = true
		}
	}

	components := make([]domain.Component, 0, len(builders))
	for name, b := range builders {
		kinds := make([]string, 0, len(b.kinds))
		for k := range b.kinds {
			kinds = append(kinds, k)
		}
		sort.Strings(kinds)
		sort.Strings(b.files)
		rel, err := filepath.Rel(absRoot, b.path)
		if err != nil {
			rel = b.path
		}
		components = append(components, domain.Component{
			Name:  name,
			Path:  filepath.ToSlash(rel),
			Kinds: kinds,
			Files: b.files,
		})
	}

	sort.Slice(components, func(i, j int) bool {
		return components[i].Name < components[j].Name
	})
	return components, nil
}

// owner returns the component name and directory for file.
func (d *ComponentDetector) owner(root, file string) (string, string) {
	dir := filepath.Dir(file)
	if within(root, dir) {
		for {
			if name, ok := d.descriptor(dir); ok {
				return name, dir
			}
			if dir == root {
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	parts := strings.Split(filepath.ToSlash(file), "/")
	if idx := lastIndex(parts[:len(parts)-1], componentsDir); idx != -1 && idx+2 < len(parts) {
		return parts[idx+1], filepath.FromSlash(strings.Join(parts[:idx+2], "/"))
	}
	return filepath.Base(root), root
}

// descriptor reports whether dir holds a component.xml and, if so, the
// component name it declares. Lookups are memoised per directory.
func (d *ComponentDetector) descriptor(dir string) (string, bool) {
	if name, ok := d.descriptors[dir]; ok {
		return name, name != ""
	}
	name := ""
	if data, err := os.ReadFile(filepath.Join(dir, descriptorFile)); err == nil {
		name = filepath.Base(dir)
		var decl struct {
			Name string `xml:"name,attr"`
		}
		if xml.Unmarshal(data, &decl) == nil && decl.Name != "" {
			name = decl.Name
		}
	}
	d.descriptors[dir] = name
	return name, name != ""
}

// kindOf is the first directory below the component, such as entity,
// service or data. Files directly in the component have no kind.
func kindOf(componentDir, file string) string {
	rel, err := filepath.Rel(componentDir, file)
	if err != nil {
		return ""
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	if len(parts) < 2 || parts[0] == ".." {
		return ""
	}
	return parts[0]
}

func within(root, dir string) bool {
	rel, err := filepath.Rel(root, dir)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func lastIndex(s []string, target string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == target {
			return i
		}
	}
	return -1
}
