package service

import (
	"context"
	"strings"
	"time"

	"github.com/alexanderramin/notestudio/internal/domain"
)

type projectService struct {
	states   StateService
	observer UseCaseObserver
}

func NewProjectService(states StateService, observers ...UseCaseObserver) ProjectService {
	return &projectService{states: states, observer: combineObservers(observers)}
}

func (s *projectService) Add(ctx context.Context, state *domain.AppState, in ProjectInput) (p domain.Project, err error) {
	startedAt := time.Now()
	fields := map[string]any{"name": in.Name}
	defer func() { observe(ctx, s.observer, "add-project", startedAt, fields, &err) }()

	name, err := requireText("project name", in.Name)
	if err != nil {
		return domain.Project{}, err
	}

	p = domain.NewProject(name, strings.TrimSpace(in.Description))
	p.ID = newID()
	if state.Settings.StatusesEnabled {
		p.Status = domain.CoalesceStr(strings.TrimSpace(in.Status), state.Settings.DefaultStatus())
	}

	state.Projects = append(state.Projects, p)
	fields["project_id"] = p.ID.String()
	return p, s.states.SaveState(ctx, state)
}

func (s *projectService) Update(ctx context.Context, state *domain.AppState, id domain.EntityID, in ProjectInput) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"project_id": id.String()}
	defer func() { observe(ctx, s.observer, "update-project", startedAt, fields, &err) }()

	p, err := findProject(state, id, "update project")
	if err != nil {
		return err
	}
	name, err := requireText("project name", in.Name)
	if err != nil {
		return err
	}

	p.Name = name
	p.Description = strings.TrimSpace(in.Description)
	if state.Settings.StatusesEnabled {
		p.Status = strings.TrimSpace(in.Status)
	}
	return s.states.SaveState(ctx, state)
}

func (s *projectService) SetStatus(ctx context.Context, state *domain.AppState, id domain.EntityID, status string) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"project_id": id.String(), "status": status}
	defer func() { observe(ctx, s.observer, "set-project-status", startedAt, fields, &err) }()

	p, err := findProject(state, id, "set project status")
	if err != nil {
		return err
	}
	p.Status = strings.TrimSpace(status)
	return s.states.SaveState(ctx, state)
}

func (s *projectService) TogglePinned(ctx context.Context, state *domain.AppState, id domain.EntityID) (pinned bool, err error) {
	startedAt := time.Now()
	fields := map[string]any{"project_id": id.String()}
	defer func() { observe(ctx, s.observer, "toggle-pinned", startedAt, fields, &err) }()

	p, err := findProject(state, id, "toggle pinned")
	if err != nil {
		return false, err
	}
	p.Pinned = !p.Pinned
	fields["pinned"] = p.Pinned
	return p.Pinned, s.states.SaveState(ctx, state)
}

func (s *projectService) Remove(ctx context.Context, state *domain.AppState, id domain.EntityID) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"project_id": id.String()}
	defer func() { observe(ctx, s.observer, "remove-project", startedAt, fields, &err) }()

	i := state.FindProject(id)
	if i < 0 {
		return notFound("remove project", "project", id)
	}
	state.Projects = append(state.Projects[:i], state.Projects[i+1:]...)
	return s.states.SaveState(ctx, state)
}

func (s *projectService) Export(ctx context.Context, state *domain.AppState, id domain.EntityID, now time.Time) (b domain.ProjectBundle, err error) {
	startedAt := time.Now()
	fields := map[string]any{"project_id": id.String()}
	defer func() { observe(ctx, s.observer, "export-project", startedAt, fields, &err) }()

	p, err := findProject(state, id, "export project")
	if err != nil {
		return domain.ProjectBundle{}, err
	}
	return domain.NewProjectBundle(*p, now), nil
}

func (s *projectService) Import(ctx context.Context, state *domain.AppState, data []byte) (p domain.Project, err error) {
	startedAt := time.Now()
	fields := map[string]any{"bytes": len(data)}
	defer func() { observe(ctx, s.observer, "import-project", startedAt, fields, &err) }()

	p, err = domain.DecodeProjectBundle(data)
	if err != nil {
		return domain.Project{}, domain.NewError(domain.ErrDeserialize, "import project", err)
	}
	reassignIDs(&p)

	state.Projects = append(state.Projects, p)
	fields["project_id"] = p.ID.String()
	fields["notes"] = len(p.Notes)
	fields["steps"] = len(p.Steps)
	return p, s.states.SaveState(ctx, state)
}
