package report

import (
	"log"
	"os"
	"path/filepath"
)

// TemplateStore supplies the audience report templates. Template content is
// opaque text as far as this package is concerned.
type TemplateStore interface {
	Load(reportType string) string
}

var templateFiles = map[string]string{
	"gp":        "gp_letter_template.md",
	"teacher":   "teacher_letter_template.md",
	"caregiver": "caregiver_template.md",
	"ndis":      "ndis_template.md",
}

var templateFallbacks = map[string]string{
	"gp":        "**GP Letter Template - Fallback**",
	"teacher":   "**Teacher Letter Template - Fallback**",
	"caregiver": "**Caregiver Report Template - Fallback**",
	"ndis":      "**NDIS Supporting Evidence Template - Fallback**",
}

// DiskTemplateStore reads templates from a directory, falling back to a
// minimal placeholder when a file is absent so report generation still
// produces something reviewable.
type DiskTemplateStore struct {
	Dir string
}

func (s DiskTemplateStore) Load(reportType string) string {
	name, ok := templateFiles[reportType]
	if !ok {
		return ""
	}

	data, err := os.ReadFile(filepath.Join(s.Dir, name))
	if err != nil {
		log.Printf("[Template] Error loading %s template: %v", reportType, err)
		return templateFallbacks[reportType]
	}
	return string(data)
}
