package project

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dhamidi/bannockburn/config"
	"github.com/dhamidi/bannockburn/parser"
)

// Project is a directory tree of scripts sharing one configuration.
type Project struct {
	RootDir string
	Config  *config.Config
}

// Load finds the project containing the current directory.
func Load() (*Project, error) {
	return LoadFrom(".")
}

// LoadFrom finds the project containing dir. The root is the directory of
// the nearest configuration file, or dir itself when there is none.
func LoadFrom(dir string) (*Project, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", dir, err)
	}
	if info, err := os.Stat(abs); err == nil && !info.IsDir() {
		abs = filepath.Dir(abs)
	}

	cfg, err := config.DiscoverOrDefault(abs)
	if err != nil {
		return nil, err
	}

	root := cfg.Dir()
	if root == "" {
		root = abs
	}
	return &Project{RootDir: root, Config: cfg}, nil
}

// Parser returns a parser configured for this project. extra defines are
// layered over the configured ones.
func (p *Project) Parser(extra map[string]string, opts ...parser.Option) *parser.Parser {
	cfg := p.Config
	if len(extra) > 0 {
		cfg = cfg.Merge(extra)
	}
	return parser.New(append(cfg.ParserOptions(), opts...)...)
}

// IsScript reports whether path has one of the configured script
// extensions.
func (p *Project) IsScript(path string) bool {
	return p.Config.HasScriptExtension(path)
}

// Scripts expands paths into script files. Directories are walked
// recursively, skipping hidden ones; files are taken as given whatever
// their extension. With no paths the project root is walked.
func (p *Project) Scripts(paths ...string) ([]string, error) {
	if len(paths) == 0 {
		paths = []string{p.RootDir}
	}

	var files []string
	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", root, err)
		}
		if !info.IsDir() {
			files = append(files, root)
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if p.IsScript(path) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scan scripts in %s: %w", root, err)
		}
	}

	sort.Strings(files)
	return files, nil
}
