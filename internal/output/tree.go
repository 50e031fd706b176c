package output

import (
	"path"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
)

// FileEntry is one file in a project summary tree.
type FileEntry struct {
	// Path is relative to the project root, using forward slashes.
	Path string

	// Note describes the file, e.g. "training loop".
	Note string

	// Status is StatusCreated, StatusOverwritten, StatusPatched or empty.
	Status string
}

// dirNode groups entries by directory while the tree is assembled.
type dirNode struct {
	name  string
	dirs  map[string]*dirNode
	files []FileEntry
}

func newDirNode(name string) *dirNode {
	return &dirNode{name: name, dirs: make(map[string]*dirNode)}
}

// RenderFileTree renders entries below rootName. Directories come before
// files, both sorted by name, and notes are aligned per directory.
func RenderFileTree(rootName string, entries []FileEntry) string {
	if len(entries) == 0 {
		return ""
	}

	root := newDirNode(rootName)
	for _, e := range entries {
		dir := root
		parent, _ := path.Split(e.Path)
		for _, part := range strings.Split(strings.Trim(parent, "/"), "/") {
			if part == "" {
				continue
			}
			child, ok := dir.dirs[part]
			if !ok {
				child = newDirNode(part)
				dir.dirs[part] = child
			}
			dir = child
		}
		dir.files = append(dir.files, e)
	}

	return root.render(StyleNoun.Render(rootName+"/")).String()
}

func (d *dirNode) render(label string) *tree.Tree {
	t := tree.Root(label).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(StyleDim.PaddingRight(1))

	names := make([]string, 0, len(d.dirs))
	for name := range d.dirs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		t.Child(d.dirs[name].render(StyleNoun.Render(name + "/")))
	}

	sort.Slice(d.files, func(i, j int) bool { return d.files[i].Path < d.files[j].Path })
	width := 0
	for _, f := range d.files {
		width = max(width, len(path.Base(f.Path)))
	}
	for _, f := range d.files {
		t.Child(fileLabel(f, width))
	}

	return t
}

func fileLabel(f FileEntry, width int) string {
	name := path.Base(f.Path)
	label := name
	if f.Note != "" || f.Status != "" {
		label += strings.Repeat(" ", width-len(name)+2)
	}
	if f.Note != "" {
		label += lipgloss.NewStyle().Foreground(ColorDimGray).Render(f.Note)
	}
	if f.Status != "" {
		if f.Note != "" {
			label += " "
		}
		label += statusStyle(f.Status).Render("(" + f.Status + ")")
	}
	return label
}
