// Package config implements auto-detection of documentation project
// settings and the optional tarjem.yaml configuration file.
//
// When a tarjem.yaml file exists in the project root, its values
// override auto-detection. Everything else is derived from the tree:
// the content directory is content/ when present, otherwise the root
// itself.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/tarjemkit/tarjem/mdfile"
)

// FileName is the optional project configuration file.
const FileName = "tarjem.yaml"

// Project holds the resolved project configuration.
type Project struct {
	// Root is the absolute project root directory.
	Root string
	// ContentDir is the directory scanned for Markdown sources.
	ContentDir string
	// TargetLang is the target language code (default "ar").
	TargetLang string
	// Fields is the translatable frontmatter field set.
	Fields []string
	// SkipDirs are directory names excluded from scanning.
	SkipDirs []string
	// ReportFile is where the audit report is written by default.
	ReportFile string
}

// projectFile is the tarjem.yaml schema.
type projectFile struct {
	ContentDir string   `yaml:"content_dir,omitempty"`
	TargetLang string   `yaml:"target_lang,omitempty"`
	Fields     []string `yaml:"fields,omitempty"`
	SkipDirs   []string `yaml:"skip_dirs,omitempty"`
	ReportFile string   `yaml:"report_file,omitempty"`
}

// Detect resolves the project configuration for rootDir, applying
// tarjem.yaml overrides when the file exists.
func Detect(rootDir string) (*Project, error) {
	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		absRoot = rootDir
	}
	if info, err := os.Stat(absRoot); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("project root %s is not a directory", absRoot)
	}

	p := &Project{
		Root:       absRoot,
		ContentDir: absRoot,
		TargetLang: "ar",
		Fields:     append([]string{}, mdfile.TranslatableFields...),
		ReportFile: filepath.Join(absRoot, "translation_audit_report.md"),
	}

	// Documentation repos conventionally keep sources under content/.
	if info, err := os.Stat(filepath.Join(absRoot, "content")); err == nil && info.IsDir() {
		p.ContentDir = filepath.Join(absRoot, "content")
	}

	if err := p.applyFile(filepath.Join(absRoot, FileName)); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Project) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading %s: %w", path, err)
	}

	var pf projectFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	if pf.ContentDir != "" {
		if filepath.IsAbs(pf.ContentDir) {
			p.ContentDir = pf.ContentDir
		} else {
			p.ContentDir = filepath.Join(p.Root, pf.ContentDir)
		}
	}
	if pf.TargetLang != "" {
		p.TargetLang = pf.TargetLang
	}
	if len(pf.Fields) > 0 {
		p.Fields = pf.Fields
	}
	if len(pf.SkipDirs) > 0 {
		p.SkipDirs = pf.SkipDirs
	}
	if pf.ReportFile != "" {
		if filepath.IsAbs(pf.ReportFile) {
			p.ReportFile = pf.ReportFile
		} else {
			p.ReportFile = filepath.Join(p.Root, pf.ReportFile)
		}
	}
	return nil
}
