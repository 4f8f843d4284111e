package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// BundleFormat tags single-project export files.
const BundleFormat = "project-notes-studio-project"

// BundleVersion is the export file version written by this build.
const BundleVersion = 1

// ProjectBundle is the on-disk shape of a single exported project.
type ProjectBundle struct {
	Format     string    `json:"format"`
	Version    int       `json:"version"`
	ExportedAt time.Time `json:"exportedAt"`
	Project    Project   `json:"project"`
}

// NewProjectBundle wraps a copy of p for export. The project's own ID is
// dropped; notes and steps keep theirs.
func NewProjectBundle(p Project, now time.Time) ProjectBundle {
	p.ID = nil
	return ProjectBundle{
		Format:     BundleFormat,
		Version:    BundleVersion,
		ExportedAt: now.UTC(),
		Project:    p,
	}
}

// DecodeProjectBundle reads an exported project. Both the wrapped bundle
// form and a bare project object are accepted; a null document or a null
// project is not.
func DecodeProjectBundle(data []byte) (Project, error) {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return Project{}, fmt.Errorf("decoding project bundle: %w", errNullProject)
	}
	var probe struct {
		Project json.RawMessage `json:"project"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return Project{}, fmt.Errorf("decoding project bundle: %w", err)
	}
	body := data
	if probe.Project != nil {
		if bytes.Equal(bytes.TrimSpace(probe.Project), []byte("null")) {
			return Project{}, fmt.Errorf("decoding project bundle: %w", errNullProject)
		}
		body = probe.Project
	}
	var p Project
	if err := json.Unmarshal(body, &p); err != nil {
		return Project{}, fmt.Errorf("decoding project bundle: %w", err)
	}
	return p, nil
}

var errNullProject = errors.New("project is null")
