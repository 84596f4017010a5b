// Package script implements ports.ScriptGenerator with a template catalog
// keyed by script type and language, plus heuristic validation of the
// generated content.
package script

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/batuta-io/batuta/pkg/schema"
)

// Generator implements ports.ScriptGenerator.
type Generator struct {
	catalog map[string]map[string]entry
}

// entry is one template in the catalog.
type entry struct {
	tmpl *template.Template
	deps []string
}

// NewGenerator creates a Generator with the built-in template catalog.
func NewGenerator() *Generator {
	mk := func(name, text string) *template.Template {
		return template.Must(template.New(name).Parse(text))
	}

	return &Generator{
		catalog: map[string]map[string]entry{
			"ci_cd": {
				"python": {tmpl: mk("ci_cd_python", ciCDPython), deps: []string{"pytest", "coverage"}},
				"bash":   {tmpl: mk("ci_cd_bash", ciCDBash)},
			},
			"deployment": {
				"bash": {tmpl: mk("deployment_bash", deploymentBash), deps: []string{"docker", "kubectl"}},
			},
			"testing": {
				"python": {tmpl: mk("testing_python", testingPython), deps: []string{"pytest", "pytest-cov"}},
			},
		},
	}
}

// templateData is what the catalog templates render with.
type templateData struct {
	Requirements string
}

// Generate builds a script for the given type and language. Unknown
// combinations fall back to a generic python script so the workflow always
// produces something runnable.
func (g *Generator) Generate(requirements, scriptType, language string) (*schema.Script, error) {
	if requirements == "" {
		return nil, fmt.Errorf("script requirements cannot be empty")
	}
	if scriptType == "" {
		scriptType = "general"
	}
	if language == "" {
		language = "python"
	}

	var (
		tmpl *template.Template
		deps []string
	)
	if byLang, ok := g.catalog[scriptType]; ok {
		if e, ok := byLang[language]; ok {
			tmpl = e.tmpl
			deps = e.deps
		}
	}
	if tmpl == nil {
		tmpl = template.Must(template.New("generic").Parse(genericPython))
		language = "python"
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, templateData{Requirements: requirements}); err != nil {
		return nil, fmt.Errorf("failed to render %s template: %w", scriptType, err)
	}

	return &schema.Script{
		ID:           fmt.Sprintf("AUTO-%s-001", strings.ToUpper(scriptType)),
		Title:        fmt.Sprintf("%s automation script", scriptType),
		Type:         scriptType,
		Language:     language,
		Content:      buf.String(),
		Usage:        usage(language, deps, requirements),
		Dependencies: deps,
	}, nil
}

// Validate runs syntax heuristics over script content. Hard problems go to
// Issues and clear Valid; style findings go to Suggestions.
func (g *Generator) Validate(content, language string) (*schema.ScriptValidation, error) {
	if content == "" {
		return nil, fmt.Errorf("script content cannot be empty")
	}

	v := &schema.ScriptValidation{Valid: true}

	switch strings.ToLower(language) {
	case "bash", "sh":
		if !strings.HasPrefix(strings.TrimSpace(content), "#!") {
			v.Issues = append(v.Issues, "missing shebang line")
		}
		if !strings.Contains(content, "set -e") {
			v.Suggestions = append(v.Suggestions, "add 'set -e' so the script stops on the first error")
		}

	case "python", "":
		if strings.Contains(content, "subprocess.") && !strings.Contains(content, "import subprocess") {
			v.Issues = append(v.Issues, "subprocess used but not imported")
		}
		if strings.Contains(content, "logging.") && !strings.Contains(content, "import logging") {
			v.Issues = append(v.Issues, "logging used but not imported")
		}
		if strings.Contains(content, "shell=True") {
			v.Suggestions = append(v.Suggestions, "shell=True can be a security risk, pass an argument list instead")
		}
		if strings.Contains(content, "os.system(") {
			v.Suggestions = append(v.Suggestions, "os.system() can be a security risk, use subprocess.run")
		}
		if strings.Contains(content, "print(") && strings.Contains(content, "logger") {
			v.Suggestions = append(v.Suggestions, "use the configured logger instead of print")
		}

	default:
		return nil, fmt.Errorf("unsupported script language %q", language)
	}

	v.Valid = len(v.Issues) == 0
	return v, nil
}

func usage(language string, deps []string, requirements string) string {
	depList := "none"
	if len(deps) > 0 {
		depList = strings.Join(deps, ", ")
	}

	run := "python script.py"
	if language == "bash" {
		run = "chmod +x script.sh && ./script.sh"
	}

	return fmt.Sprintf("Run with: %s\nDependencies: %s\nRequirements addressed: %s", run, depList, requirements)
}
