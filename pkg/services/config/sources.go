package config

import (
	"fmt"

	"github.com/de-tools/hours-atlas/pkg/models/domain"
	"gopkg.in/ini.v1"
)

// Registry lists the source profiles of an ini file:
//
//	[PayrollSystem]
//	path = exports/sap.csv
//
//	[HRSystem]
//	path   = exports/zalaris.csv
//	schema = HRSystem
type Registry interface {
	GetProfiles() ([]domain.SourceID, error)
	GetProfile(name domain.SourceID) (domain.SourceProfile, error)
}

type iniRegistry struct {
	cfg *ini.File
}

func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load sources file: %w", err)
	}
	return &iniRegistry{cfg: cfg}, nil
}

func (r *iniRegistry) GetProfiles() ([]domain.SourceID, error) {
	var profiles []domain.SourceID
	for _, section := range r.cfg.Sections() {
		if len(section.Keys()) > 0 {
			profiles = append(profiles, domain.SourceID(section.Name()))
		}
	}
	return profiles, nil
}

func (r *iniRegistry) GetProfile(name domain.SourceID) (domain.SourceProfile, error) {
	section, err := r.cfg.GetSection(string(name))
	if err != nil {
		return domain.SourceProfile{}, fmt.Errorf("profile %s not found", name)
	}

	path := section.Key("path").String()
	if path == "" {
		return domain.SourceProfile{}, fmt.Errorf("profile %s has no path", name)
	}

	return domain.SourceProfile{
		Name:   name,
		Path:   path,
		Schema: domain.SourceID(section.Key("schema").String()),
	}, nil
}
