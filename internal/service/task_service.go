package service

import (
	"context"
	"strings"
	"time"

	"todolist-be/internal/entity"
	"todolist-be/internal/pkg/apperror"
	"todolist-be/internal/repository/specification"
	"todolist-be/internal/repository/unitofwork"
	"todolist-be/pkg/events"
)

// ListOrder fixes the listing order per front end: the web UI shows tasks in
// insertion order, the chat bot newest-first. A front end picks one and
// sticks with it.
type ListOrder int

const (
	OrderIDAsc ListOrder = iota
	OrderNewestFirst
)

type ITaskService interface {
	List(ctx context.Context, userId int64, order ListOrder) ([]*entity.Task, error)
	Add(ctx context.Context, userId int64, text string) (*entity.Task, error)
	Edit(ctx context.Context, userId, taskId int64, newText string) error
	Remove(ctx context.Context, userId, taskId int64) error
}

type taskService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher IPublisherService
	queryTimeout   time.Duration
}

func NewTaskService(uowFactory unitofwork.RepositoryFactory, eventPublisher IPublisherService, queryTimeout time.Duration) ITaskService {
	return &taskService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		queryTimeout:   queryTimeout,
	}
}

func (s *taskService) List(ctx context.Context, userId int64, order ListOrder) ([]*entity.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	orderSpec := specification.OrderBy{Field: "id"}
	if order == OrderNewestFirst {
		orderSpec = specification.OrderBy{Field: "created_at", Desc: true}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	tasks, err := uow.TaskRepository().FindAll(ctx,
		specification.OwnedBy{UserID: userId},
		orderSpec,
	)
	if err != nil {
		return nil, apperror.Storage(err)
	}
	return tasks, nil
}

func (s *taskService) Add(ctx context.Context, userId int64, text string) (*entity.Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperror.ErrEmptyText
	}

	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	task := &entity.Task{
		UserId:    userId,
		Text:      text,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := uow.TaskRepository().Create(ctx, task); err != nil {
		return nil, apperror.Storage(err)
	}

	s.publish(ctx, events.TypeTaskCreated, task.Id, userId)
	return task, nil
}

// Edit updates the task text filtered by both task id and owner id in one
// statement. Zero affected rows means missing or not owned; callers get the
// same answer for both.
func (s *taskService) Edit(ctx context.Context, userId, taskId int64, newText string) error {
	newText = strings.TrimSpace(newText)
	if newText == "" {
		return apperror.ErrEmptyText
	}

	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	affected, err := uow.TaskRepository().UpdateTextOwned(ctx, taskId, userId, newText)
	if err != nil {
		return apperror.Storage(err)
	}
	if affected == 0 {
		return apperror.ErrTaskNotFound
	}

	s.publish(ctx, events.TypeTaskUpdated, taskId, userId)
	return nil
}

func (s *taskService) Remove(ctx context.Context, userId, taskId int64) error {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	affected, err := uow.TaskRepository().DeleteOwned(ctx, taskId, userId)
	if err != nil {
		return apperror.Storage(err)
	}
	if affected == 0 {
		return apperror.ErrTaskNotFound
	}

	s.publish(ctx, events.TypeTaskDeleted, taskId, userId)
	return nil
}

func (s *taskService) publish(ctx context.Context, eventType string, taskId, userId int64) {
	if s.eventPublisher == nil {
		return
	}
	event := events.BaseEvent{
		Type: eventType,
		Data: map[string]interface{}{
			"task_id": taskId,
			"user_id": userId,
		},
		OccurredAt: time.Now(),
	}
	// auxiliary; a publish failure must not fail the mutation
	_ = s.eventPublisher.PublishEvent(ctx, event)
}
