package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/notestudio/internal/domain"
)

type stepService struct {
	states   StateService
	observer UseCaseObserver
}

func NewStepService(states StateService, observers ...UseCaseObserver) StepService {
	return &stepService{states: states, observer: combineObservers(observers)}
}

func targetFields(target StepTarget) map[string]any {
	fields := map[string]any{"project_id": target.Project.String()}
	if target.Note != nil {
		fields["note_id"] = target.Note.String()
	}
	return fields
}

func (s *stepService) Add(ctx context.Context, state *domain.AppState, target StepTarget, text string) (st domain.Step, err error) {
	startedAt := time.Now()
	fields := targetFields(target)
	defer func() { observe(ctx, s.observer, "add-step", startedAt, fields, &err) }()

	steps, err := checklist(state, target, "add step")
	if err != nil {
		return domain.Step{}, err
	}
	text, err = requireText("step text", text)
	if err != nil {
		return domain.Step{}, err
	}

	st = domain.Step{ID: newID(), Text: text}
	*steps = append(*steps, st)
	fields["step_id"] = st.ID.String()
	return st, s.states.SaveState(ctx, state)
}

func (s *stepService) SetDone(ctx context.Context, state *domain.AppState, target StepTarget, stepID domain.EntityID, done bool) (err error) {
	startedAt := time.Now()
	fields := targetFields(target)
	fields["step_id"] = stepID.String()
	defer func() { observe(ctx, s.observer, "set-step-done", startedAt, fields, &err) }()

	st, err := s.find(state, target, stepID, "set step done")
	if err != nil {
		return err
	}
	st.Done = done
	return s.states.SaveState(ctx, state)
}

func (s *stepService) Toggle(ctx context.Context, state *domain.AppState, target StepTarget, stepID domain.EntityID) (done bool, err error) {
	startedAt := time.Now()
	fields := targetFields(target)
	fields["step_id"] = stepID.String()
	defer func() { observe(ctx, s.observer, "toggle-step", startedAt, fields, &err) }()

	st, err := s.find(state, target, stepID, "toggle step")
	if err != nil {
		return false, err
	}
	st.Done = !st.Done
	return st.Done, s.states.SaveState(ctx, state)
}

func (s *stepService) Remove(ctx context.Context, state *domain.AppState, target StepTarget, stepID domain.EntityID) (err error) {
	startedAt := time.Now()
	fields := targetFields(target)
	fields["step_id"] = stepID.String()
	defer func() { observe(ctx, s.observer, "remove-step", startedAt, fields, &err) }()

	steps, err := checklist(state, target, "remove step")
	if err != nil {
		return err
	}
	for i := range *steps {
		if domain.SameID((*steps)[i].ID, &stepID) {
			*steps = append((*steps)[:i], (*steps)[i+1:]...)
			return s.states.SaveState(ctx, state)
		}
	}
	return notFound("remove step", "step", stepID)
}

func (s *stepService) Move(ctx context.Context, state *domain.AppState, projectID domain.EntityID, from, to int) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"project_id": projectID.String(), "from": from, "to": to}
	defer func() { observe(ctx, s.observer, "move-step", startedAt, fields, &err) }()

	p, err := findProject(state, projectID, "move step")
	if err != nil {
		return err
	}
	if !p.MoveStep(from, to) {
		return fmt.Errorf("move step: positions %d -> %d out of range (have %d steps)", from, to, len(p.Steps))
	}
	return s.states.SaveState(ctx, state)
}

func (s *stepService) find(state *domain.AppState, target StepTarget, stepID domain.EntityID, op string) (*domain.Step, error) {
	steps, err := checklist(state, target, op)
	if err != nil {
		return nil, err
	}
	for i := range *steps {
		if domain.SameID((*steps)[i].ID, &stepID) {
			return &(*steps)[i], nil
		}
	}
	return nil, notFound(op, "step", stepID)
}
