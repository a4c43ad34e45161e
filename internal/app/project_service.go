package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"varboard/internal/logger"
	"varboard/internal/model"
	"varboard/internal/repository"
)

var (
	ErrProjectNotFound  = errors.New("project not found")
	ErrTableNotFound    = errors.New("table not found")
	ErrVariableNotFound = errors.New("variable not found")
	ErrNameTaken        = errors.New("name already in use")
)

// ChangePublisher receives one event per successful mutation.
type ChangePublisher interface {
	Publish(ctx context.Context, ev model.ChangeEvent) error
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, model.ChangeEvent) error { return nil }

// ProjectService owns the project → table → variable hierarchy of a user.
// Every method is scoped by the caller's user id.
type ProjectService struct {
	projectRepo  *repository.ProjectRepository
	tableRepo    *repository.TableRepository
	variableRepo *repository.VariableRepository
	publisher    ChangePublisher
	log          logger.Logger
	now          func() time.Time
}

func NewProjectService(
	projectRepo *repository.ProjectRepository,
	tableRepo *repository.TableRepository,
	variableRepo *repository.VariableRepository,
	publisher ChangePublisher,
	log logger.Logger,
) *ProjectService {
	if publisher == nil {
		publisher = noopPublisher{}
	}
	return &ProjectService{
		projectRepo:  projectRepo,
		tableRepo:    tableRepo,
		variableRepo: variableRepo,
		publisher:    publisher,
		log:          log.WithComponent("app.project"),
		now:          time.Now,
	}
}

// publish never fails the mutation that triggered it.
func (s *ProjectService) publish(ctx context.Context, ev model.ChangeEvent) {
	ev.OccurredAt = s.now()
	if err := s.publisher.Publish(ctx, ev); err != nil {
		s.log.WithError(err).WithFields(map[string]interface{}{
			"entity":     ev.Entity,
			"action":     ev.Action,
			"project_id": ev.ProjectID,
		}).Warnf("publish change event failed")
	}
}

func cleanName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrInvalidInput
	}
	return name, nil
}

func (s *ProjectService) CreateProject(ctx context.Context, userID uint, name string) (*model.Project, error) {
	name, err := cleanName(name)
	if err != nil {
		return nil, err
	}

	project := &model.Project{
		UserID: userID,
		Name:   name,
		Token:  uuid.NewString(),
	}
	if err := s.projectRepo.Create(project); err != nil {
		return nil, err
	}

	s.publish(ctx, model.ChangeEvent{
		Entity:    model.EntityProject,
		Action:    model.ActionCreate,
		UserID:    userID,
		ProjectID: project.ID,
		Name:      project.Name,
	})
	return project, nil
}

// ListProjects returns nil when the user owns nothing.
func (s *ProjectService) ListProjects(userID uint) ([]model.Project, error) {
	projects, err := s.projectRepo.ListByUserID(userID)
	if err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		return nil, nil
	}
	return projects, nil
}

func (s *ProjectService) GetProject(userID, projectID uint) (*model.Project, error) {
	project, err := s.projectRepo.GetTree(projectID, userID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}
	return project, nil
}

func (s *ProjectService) RenameProject(ctx context.Context, userID, projectID uint, name string) error {
	name, err := cleanName(name)
	if err != nil {
		return err
	}
	ok, err := s.projectRepo.RenameByIDAndUserID(projectID, userID, name)
	if err != nil {
		return err
	}
	if !ok {
		return ErrProjectNotFound
	}

	s.publish(ctx, model.ChangeEvent{
		Entity:    model.EntityProject,
		Action:    model.ActionUpdate,
		UserID:    userID,
		ProjectID: projectID,
		Name:      name,
	})
	return nil
}

func (s *ProjectService) DeleteProject(ctx context.Context, userID, projectID uint) error {
	ok, err := s.projectRepo.DeleteByIDAndUserID(projectID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrProjectNotFound
	}

	s.publish(ctx, model.ChangeEvent{
		Entity:    model.EntityProject,
		Action:    model.ActionDelete,
		UserID:    userID,
		ProjectID: projectID,
	})
	return nil
}

// EnsureOwner fails with ErrProjectNotFound unless userID owns the project.
func (s *ProjectService) EnsureOwner(userID, projectID uint) error {
	project, err := s.projectRepo.GetByIDAndUserID(projectID, userID)
	if err != nil {
		return err
	}
	if project == nil {
		return ErrProjectNotFound
	}
	return nil
}
