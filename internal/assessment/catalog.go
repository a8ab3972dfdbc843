// Package assessment implements the claim-test engine: question generation,
// session tracking, grading, and employer-fit ranking.
package assessment

import (
	"fmt"
	"sync"

	"github.com/spf13/viper"
	"skillproof/internal/errors"
	"skillproof/internal/types"
)

// DefaultTestSkills is the last-resort claimed-skill list used when both
// extraction and the employer catalog yield nothing.
var DefaultTestSkills = []string{"JavaScript", "Node", "React", "SQL", "Git"}

// defaultTemplates is the built-in employer catalog.
func defaultTemplates() []types.EmployerTemplate {
	return []types.EmployerTemplate{
		{
			CompanyID:   "code-orbit",
			CompanyName: "CodeOrbit",
			Role:        "Backend Developer",
			RequiredSkills: []types.SkillRequirement{
				{Skill: "Node", Weight: 25},
				{Skill: "Express", Weight: 20},
				{Skill: "MongoDB", Weight: 20},
				{Skill: "SQL", Weight: 15},
				{Skill: "System Design", Weight: 20},
			},
		},
		{
			CompanyID:   "pixel-forge",
			CompanyName: "PixelForge",
			Role:        "Frontend Developer",
			RequiredSkills: []types.SkillRequirement{
				{Skill: "React", Weight: 30},
				{Skill: "JavaScript", Weight: 20},
				{Skill: "TypeScript", Weight: 20},
				{Skill: "CSS", Weight: 15},
				{Skill: "REST API", Weight: 15},
			},
		},
		{
			CompanyID:   "data-sphere",
			CompanyName: "DataSphere",
			Role:        "Data Analyst",
			RequiredSkills: []types.SkillRequirement{
				{Skill: "Python", Weight: 30},
				{Skill: "SQL", Weight: 30},
				{Skill: "Statistics", Weight: 20},
				{Skill: "Excel", Weight: 20},
			},
		},
	}
}

// Catalog holds the ordered employer template list. Templates are replaced
// wholesale on reload; readers always see a consistent snapshot.
type Catalog struct {
	mu        sync.RWMutex
	templates []types.EmployerTemplate
	path      string
	logger    *errors.Logger
}

// NewCatalog returns a catalog populated with the built-in templates.
func NewCatalog() *Catalog {
	return &Catalog{templates: defaultTemplates()}
}

// NewCatalogFromFile loads the catalog from a YAML file. The file is read
// once here; pair with a CatalogWatcher for hot reload.
func NewCatalogFromFile(path string, logger *errors.Logger) (*Catalog, error) {
	c := &Catalog{path: path, logger: logger}
	if err := c.Reload(); err != nil {
		return nil, err
	}
	return c, nil
}

// catalogFile is the on-disk catalog shape, decoded by viper.
type catalogFile struct {
	Templates []struct {
		CompanyID      string `mapstructure:"companyId"`
		CompanyName    string `mapstructure:"companyName"`
		Role           string `mapstructure:"role"`
		RequiredSkills []struct {
			Skill  string `mapstructure:"skill"`
			Weight int    `mapstructure:"weight"`
		} `mapstructure:"requiredSkills"`
	} `mapstructure:"templates"`
}

// Reload re-reads the catalog file and swaps in the new template list.
// A catalog created without a file path is immutable and reload is a no-op.
func (c *Catalog) Reload() error {
	if c.path == "" {
		return nil
	}

	v := viper.New()
	v.SetConfigFile(c.path)
	if err := v.ReadInConfig(); err != nil {
		return errors.NewConfigError(errors.ErrCodeInvalidConfig,
			"failed to read employer catalog file", err).WithContext("path", c.path)
	}

	var file catalogFile
	if err := v.Unmarshal(&file); err != nil {
		return errors.NewConfigError(errors.ErrCodeInvalidConfig,
			"failed to parse employer catalog file", err).WithContext("path", c.path)
	}

	templates, err := file.toTemplates()
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.templates = templates
	c.mu.Unlock()

	if c.logger != nil {
		c.logger.Info("Employer catalog loaded", "path", c.path, "templates", len(templates))
	}
	return nil
}

func (f *catalogFile) toTemplates() ([]types.EmployerTemplate, error) {
	if len(f.Templates) == 0 {
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			"employer catalog file contains no templates", nil)
	}

	templates := make([]types.EmployerTemplate, 0, len(f.Templates))
	for _, t := range f.Templates {
		if t.CompanyID == "" {
			return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
				"employer catalog template is missing companyId", nil)
		}
		tmpl := types.EmployerTemplate{
			CompanyID:   t.CompanyID,
			CompanyName: t.CompanyName,
			Role:        t.Role,
		}
		for _, r := range t.RequiredSkills {
			if r.Weight <= 0 {
				return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
					fmt.Sprintf("requirement %q of template %q has non-positive weight", r.Skill, t.CompanyID), nil)
			}
			tmpl.RequiredSkills = append(tmpl.RequiredSkills, types.SkillRequirement{
				Skill:  r.Skill,
				Weight: r.Weight,
			})
		}
		templates = append(templates, tmpl)
	}
	return templates, nil
}

// Templates returns a copy of the current template list in catalog order.
func (c *Catalog) Templates() []types.EmployerTemplate {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]types.EmployerTemplate, len(c.templates))
	copy(out, c.templates)
	return out
}

// Size returns the number of templates in the catalog.
func (c *Catalog) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.templates)
}
