package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"propboard/internal/cache"
	dom "propboard/internal/domain"
	"propboard/internal/repo"
	"propboard/internal/storage"

	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

const (
	maxImagesPerTask = 5
	maxImageBytes    = 1 << 20 // 1 MiB
)

// ImageFile is one uploaded attachment before validation.
type ImageFile struct {
	Name        string
	ContentType string
	Size        int64
	Data        io.Reader
}

// ImageWithURL pairs a stored attachment with a presigned download URL.
// URL is empty when signing failed for that one entry.
type ImageWithURL struct {
	Image dom.TaskImage
	URL   string
}

// UpdateTaskInput is a partial update: nil fields are left unchanged.
// Completed takes precedence over Status when both are set. PortfolioID
// pointing at an empty string unassigns the task.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Completed   *bool
	Status      *string
	Label       *string
	Priority    *string
	DueDate     *time.Time
	PortfolioID *string
}

// TaskService orchestrates task CRUD, the creation strategy chain and
// attachment handling.
type TaskService struct {
	tasks      repo.TaskRepo
	images     repo.TaskImageRepo
	profiles   repo.ProfileRepo
	store      storage.ObjectStore
	strategies []CreationStrategy
	cache      *cache.TaskCache
	sf         singleflight.Group
}

// NewTaskService creates a TaskService. If c is nil, caching is disabled.
func NewTaskService(
	tasks repo.TaskRepo,
	images repo.TaskImageRepo,
	profiles repo.ProfileRepo,
	store storage.ObjectStore,
	strategies []CreationStrategy,
	c *cache.TaskCache,
) *TaskService {
	return &TaskService{
		tasks:      tasks,
		images:     images,
		profiles:   profiles,
		store:      store,
		strategies: strategies,
		cache:      c,
	}
}

// Create runs the strategy chain until one succeeds, then applies the
// optional due date / priority patch, bumps usage tracking, and attaches
// any provided images. Already-created state is not rolled back when a
// later step fails.
func (s *TaskService) Create(ctx context.Context, userID string, in NewTaskInput, dueDate *time.Time, priority *string, files []ImageFile) (dom.Task, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	if in.Title == "" {
		return dom.Task{}, ErrTitleRequired
	}
	if priority != nil && !dom.ValidPriority(*priority) {
		return dom.Task{}, ErrInvalidPriority
	}

	var (
		task    dom.Task
		created bool
		lastErr error
	)
	for _, st := range s.strategies {
		if !st.CanHandle() {
			continue
		}
		t, err := st.Create(ctx, userID, in)
		if err != nil {
			lastErr = err
			logrus.WithError(err).Warn("task creation strategy failed, trying next")
			continue
		}
		task = t
		created = true
		break
	}
	if !created {
		if lastErr == nil {
			lastErr = errors.New("no task creation strategy available")
		}
		return dom.Task{}, lastErr
	}

	if dueDate != nil || priority != nil {
		if dueDate != nil {
			task.DueDate = dueDate
		}
		if priority != nil {
			task.Priority = *priority
		}
		t, err := s.tasks.Save(ctx, task)
		if err != nil {
			return dom.Task{}, err
		}
		task = t
	}

	if err := s.profiles.IncrementTasksCreated(ctx, userID); err != nil {
		return dom.Task{}, err
	}

	if len(files) > 0 {
		if _, err := s.AttachImages(ctx, userID, task.ID, files); err != nil {
			return dom.Task{}, err
		}
	}

	s.invalidateCache(ctx, userID)
	return task, nil
}

// List returns all tasks for a user, newest first.
func (s *TaskService) List(ctx context.Context, userID string) ([]dom.Task, error) {
	opts := repo.ListOptions{
		Filters: []repo.Filter{repo.Eq("user_id", userID)},
		OrderBy: []repo.Order{repo.Desc("created_at")},
	}
	if s.cache != nil {
		v, err, _ := s.sf.Do("tasks:"+userID, func() (interface{}, error) {
			if list, err := s.cache.GetTasks(ctx, userID); err == nil && list != nil {
				return list, nil
			}
			list, err := s.tasks.List(ctx, opts)
			if err != nil {
				return nil, err
			}
			_ = s.cache.SetTasks(ctx, userID, list)
			return list, nil
		})
		if err != nil {
			return nil, err
		}
		return v.([]dom.Task), nil
	}
	return s.tasks.List(ctx, opts)
}

// Get returns one task owned by the user.
func (s *TaskService) Get(ctx context.Context, userID, id string) (dom.Task, error) {
	t, err := s.tasks.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Task{}, ErrNotFound
		}
		return dom.Task{}, err
	}
	return t, nil
}

// Update applies a partial patch. Completed drives status: true forces
// done, false restores the given or previous status; a status change
// alone flips completed to match.
func (s *TaskService) Update(ctx context.Context, userID, id string, patch UpdateTaskInput) (dom.Task, error) {
	t, err := s.Get(ctx, userID, id)
	if err != nil {
		return dom.Task{}, err
	}
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return dom.Task{}, ErrTitleRequired
		}
		t.Title = title
	}
	if patch.Description != nil {
		t.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Label != nil {
		t.Label = *patch.Label
	}
	if patch.Priority != nil {
		if !dom.ValidPriority(*patch.Priority) {
			return dom.Task{}, ErrInvalidPriority
		}
		t.Priority = *patch.Priority
	}
	if patch.DueDate != nil {
		t.DueDate = patch.DueDate
	}
	if patch.PortfolioID != nil {
		if *patch.PortfolioID == "" {
			t.PortfolioID = nil
		} else {
			t.PortfolioID = patch.PortfolioID
		}
	}
	if patch.Completed != nil {
		t.ApplyCompletion(*patch.Completed, patch.Status)
	} else if patch.Status != nil && *patch.Status != "" {
		t.Status = *patch.Status
		t.Completed = *patch.Status == dom.StatusDone
	}

	out, err := s.tasks.Save(ctx, t)
	if err != nil {
		return dom.Task{}, err
	}
	s.invalidateCache(ctx, userID)
	return out, nil
}

// Delete removes a task. Deleting a missing task is a no-op.
func (s *TaskService) Delete(ctx context.Context, userID, id string) error {
	if err := s.tasks.Delete(ctx, userID, id); err != nil {
		return err
	}
	s.invalidateCache(ctx, userID)
	return nil
}

// AttachImages validates and stores a batch of attachments for a task.
// A task holds at most five images: with five already present the whole
// batch is rejected; otherwise the batch is truncated to the free slots.
// Per-file validation errors abort the batch; files uploaded before the
// failing one stay stored.
func (s *TaskService) AttachImages(ctx context.Context, userID, taskID string, files []ImageFile) ([]dom.TaskImage, error) {
	existing, err := s.images.CountByTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if existing >= maxImagesPerTask {
		return nil, ErrTooManyImages
	}
	if remaining := maxImagesPerTask - existing; len(files) > remaining {
		files = files[:remaining]
	}

	var stored []dom.TaskImage
	for _, f := range files {
		if !strings.HasPrefix(f.ContentType, "image/") {
			return stored, fmt.Errorf("%s: %w", f.Name, ErrNotAnImage)
		}
		if f.Size > maxImageBytes {
			return stored, fmt.Errorf("%s: %w", f.Name, ErrFileTooLarge)
		}
		key := storage.ObjectKey(userID, taskID, f.Name)
		if err := s.store.Upload(ctx, key, f.ContentType, f.Data, f.Size); err != nil {
			return stored, fmt.Errorf("upload %s: %w", f.Name, err)
		}
		img, err := s.images.Save(ctx, dom.TaskImage{ID: dom.NewID(), TaskID: taskID, Path: key})
		if err != nil {
			return stored, err
		}
		stored = append(stored, img)
	}
	return stored, nil
}

// ListImages returns a task's attachments, oldest first, each with a
// presigned URL. A signing failure degrades that entry to an empty URL
// instead of failing the list.
func (s *TaskService) ListImages(ctx context.Context, taskID string) ([]ImageWithURL, error) {
	imgs, err := s.images.ListByTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	out := make([]ImageWithURL, 0, len(imgs))
	for _, img := range imgs {
		url, err := s.store.Presign(ctx, img.Path, 0) // store's configured TTL
		if err != nil {
			logrus.WithError(err).WithField("image_id", img.ID).Warn("presign failed")
			url = ""
		}
		out = append(out, ImageWithURL{Image: img, URL: url})
	}
	return out, nil
}

// RemoveImage deletes the stored object, then its tracking row. The
// image must belong to the given task and the task to the given user;
// an image id under someone else's task reads as not found.
func (s *TaskService) RemoveImage(ctx context.Context, userID, taskID, imageID string) error {
	if _, err := s.Get(ctx, userID, taskID); err != nil {
		return err
	}
	img, err := s.images.GetByID(ctx, imageID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if img.TaskID != taskID {
		return ErrNotFound
	}
	if err := s.store.Remove(ctx, img.Path); err != nil {
		return err
	}
	return s.images.Delete(ctx, imageID)
}

// RemoveLegacyImage clears the old single-image field on tasks created
// before the task_images table existed. No-op when the field is empty.
func (s *TaskService) RemoveLegacyImage(ctx context.Context, userID, taskID string) error {
	t, err := s.Get(ctx, userID, taskID)
	if err != nil {
		return err
	}
	if t.ImageURL == nil || *t.ImageURL == "" {
		return nil
	}
	if err := s.store.Remove(ctx, *t.ImageURL); err != nil {
		return err
	}
	return s.tasks.ClearImageURL(ctx, userID, taskID)
}

func (s *TaskService) invalidateCache(ctx context.Context, userID string) {
	if s.cache != nil {
		_ = s.cache.InvalidateUser(ctx, userID)
	}
}
