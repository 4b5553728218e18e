package service

import (
	"context"
	"errors"
	"io"
	"time"

	dom "propboard/internal/domain"
	"propboard/internal/repo"
)

type stubTaskRepo struct {
	getByIDFn       func(ctx context.Context, userID, id string) (dom.Task, error)
	listFn          func(ctx context.Context, opts repo.ListOptions) ([]dom.Task, error)
	saveFn          func(ctx context.Context, t dom.Task) (dom.Task, error)
	deleteFn        func(ctx context.Context, userID, id string) error
	clearImageURLFn func(ctx context.Context, userID, id string) error
}

func (s *stubTaskRepo) GetByID(ctx context.Context, userID, id string) (dom.Task, error) {
	if s.getByIDFn == nil {
		return dom.Task{}, errors.New("unexpected GetByID call")
	}
	return s.getByIDFn(ctx, userID, id)
}

func (s *stubTaskRepo) List(ctx context.Context, opts repo.ListOptions) ([]dom.Task, error) {
	if s.listFn == nil {
		return nil, errors.New("unexpected List call")
	}
	return s.listFn(ctx, opts)
}

func (s *stubTaskRepo) Save(ctx context.Context, t dom.Task) (dom.Task, error) {
	if s.saveFn == nil {
		return dom.Task{}, errors.New("unexpected Save call")
	}
	return s.saveFn(ctx, t)
}

func (s *stubTaskRepo) Delete(ctx context.Context, userID, id string) error {
	if s.deleteFn == nil {
		return errors.New("unexpected Delete call")
	}
	return s.deleteFn(ctx, userID, id)
}

func (s *stubTaskRepo) ClearImageURL(ctx context.Context, userID, id string) error {
	if s.clearImageURLFn == nil {
		return errors.New("unexpected ClearImageURL call")
	}
	return s.clearImageURLFn(ctx, userID, id)
}

type stubImageRepo struct {
	listByTaskFn  func(ctx context.Context, taskID string) ([]dom.TaskImage, error)
	countByTaskFn func(ctx context.Context, taskID string) (int, error)
	saveFn        func(ctx context.Context, img dom.TaskImage) (dom.TaskImage, error)
	deleteFn      func(ctx context.Context, id string) error
	getByIDFn     func(ctx context.Context, id string) (dom.TaskImage, error)
}

func (s *stubImageRepo) ListByTask(ctx context.Context, taskID string) ([]dom.TaskImage, error) {
	if s.listByTaskFn == nil {
		return nil, errors.New("unexpected ListByTask call")
	}
	return s.listByTaskFn(ctx, taskID)
}

func (s *stubImageRepo) CountByTask(ctx context.Context, taskID string) (int, error) {
	if s.countByTaskFn == nil {
		return 0, errors.New("unexpected CountByTask call")
	}
	return s.countByTaskFn(ctx, taskID)
}

func (s *stubImageRepo) Save(ctx context.Context, img dom.TaskImage) (dom.TaskImage, error) {
	if s.saveFn == nil {
		return dom.TaskImage{}, errors.New("unexpected Save call")
	}
	return s.saveFn(ctx, img)
}

func (s *stubImageRepo) Delete(ctx context.Context, id string) error {
	if s.deleteFn == nil {
		return errors.New("unexpected Delete call")
	}
	return s.deleteFn(ctx, id)
}

func (s *stubImageRepo) GetByID(ctx context.Context, id string) (dom.TaskImage, error) {
	if s.getByIDFn == nil {
		return dom.TaskImage{}, errors.New("unexpected GetByID call")
	}
	return s.getByIDFn(ctx, id)
}

type stubProfileRepo struct {
	getFn          func(ctx context.Context, userID string) (dom.Profile, error)
	ensureExistsFn func(ctx context.Context, userID string) error
	updateFn       func(ctx context.Context, p dom.Profile) (dom.Profile, error)
	incrementFn    func(ctx context.Context, userID string) error
}

func (s *stubProfileRepo) Get(ctx context.Context, userID string) (dom.Profile, error) {
	if s.getFn == nil {
		return dom.Profile{}, errors.New("unexpected Get call")
	}
	return s.getFn(ctx, userID)
}

func (s *stubProfileRepo) EnsureExists(ctx context.Context, userID string) error {
	if s.ensureExistsFn == nil {
		return nil
	}
	return s.ensureExistsFn(ctx, userID)
}

func (s *stubProfileRepo) Update(ctx context.Context, p dom.Profile) (dom.Profile, error) {
	if s.updateFn == nil {
		return dom.Profile{}, errors.New("unexpected Update call")
	}
	return s.updateFn(ctx, p)
}

func (s *stubProfileRepo) IncrementTasksCreated(ctx context.Context, userID string) error {
	if s.incrementFn == nil {
		return nil
	}
	return s.incrementFn(ctx, userID)
}

type stubPortfolioRepo struct {
	getByIDFn func(ctx context.Context, userID, id string) (dom.Portfolio, error)
	listFn    func(ctx context.Context, opts repo.ListOptions) ([]dom.Portfolio, error)
	saveFn    func(ctx context.Context, p dom.Portfolio) (dom.Portfolio, error)
	deleteFn  func(ctx context.Context, userID, id string) error
}

func (s *stubPortfolioRepo) GetByID(ctx context.Context, userID, id string) (dom.Portfolio, error) {
	if s.getByIDFn == nil {
		return dom.Portfolio{}, errors.New("unexpected GetByID call")
	}
	return s.getByIDFn(ctx, userID, id)
}

func (s *stubPortfolioRepo) List(ctx context.Context, opts repo.ListOptions) ([]dom.Portfolio, error) {
	if s.listFn == nil {
		return nil, errors.New("unexpected List call")
	}
	return s.listFn(ctx, opts)
}

func (s *stubPortfolioRepo) Save(ctx context.Context, p dom.Portfolio) (dom.Portfolio, error) {
	if s.saveFn == nil {
		return dom.Portfolio{}, errors.New("unexpected Save call")
	}
	return s.saveFn(ctx, p)
}

func (s *stubPortfolioRepo) Delete(ctx context.Context, userID, id string) error {
	if s.deleteFn == nil {
		return errors.New("unexpected Delete call")
	}
	return s.deleteFn(ctx, userID, id)
}

type stubAddressRepo struct {
	getOrCreateFn       func(ctx context.Context, a dom.Address) (string, error)
	getCurrentPrimaryFn func(ctx context.Context, userID, kind string) (dom.ProfileAddress, error)
	closeValidityFn     func(ctx context.Context, linkID string, validTo time.Time) error
	insertPrimaryFn     func(ctx context.Context, link dom.ProfileAddress) (dom.ProfileAddress, error)
}

func (s *stubAddressRepo) GetOrCreate(ctx context.Context, a dom.Address) (string, error) {
	if s.getOrCreateFn == nil {
		return "", errors.New("unexpected GetOrCreate call")
	}
	return s.getOrCreateFn(ctx, a)
}

func (s *stubAddressRepo) GetCurrentPrimary(ctx context.Context, userID, kind string) (dom.ProfileAddress, error) {
	if s.getCurrentPrimaryFn == nil {
		return dom.ProfileAddress{}, errors.New("unexpected GetCurrentPrimary call")
	}
	return s.getCurrentPrimaryFn(ctx, userID, kind)
}

func (s *stubAddressRepo) CloseValidity(ctx context.Context, linkID string, validTo time.Time) error {
	if s.closeValidityFn == nil {
		return errors.New("unexpected CloseValidity call")
	}
	return s.closeValidityFn(ctx, linkID, validTo)
}

func (s *stubAddressRepo) InsertPrimary(ctx context.Context, link dom.ProfileAddress) (dom.ProfileAddress, error) {
	if s.insertPrimaryFn == nil {
		return dom.ProfileAddress{}, errors.New("unexpected InsertPrimary call")
	}
	return s.insertPrimaryFn(ctx, link)
}

type stubUserRepo struct {
	getByEmailFn func(ctx context.Context, email string) (dom.User, error)
	getByIDFn    func(ctx context.Context, id string) (dom.User, error)
	createFn     func(ctx context.Context, id, email, passwordHash string) (dom.User, error)
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (dom.User, error) {
	if s.getByEmailFn == nil {
		return dom.User{}, errors.New("unexpected GetByEmail call")
	}
	return s.getByEmailFn(ctx, email)
}

func (s *stubUserRepo) GetByID(ctx context.Context, id string) (dom.User, error) {
	if s.getByIDFn == nil {
		return dom.User{}, errors.New("unexpected GetByID call")
	}
	return s.getByIDFn(ctx, id)
}

func (s *stubUserRepo) Create(ctx context.Context, id, email, passwordHash string) (dom.User, error) {
	if s.createFn == nil {
		return dom.User{}, errors.New("unexpected Create call")
	}
	return s.createFn(ctx, id, email, passwordHash)
}

// stubStore records uploads and removals in memory.
type stubStore struct {
	uploads   []string
	removed   []string
	uploadErr error
	presignFn func(key string) (string, error)
}

func (s *stubStore) Upload(ctx context.Context, key, contentType string, r io.Reader, size int64) error {
	if s.uploadErr != nil {
		return s.uploadErr
	}
	s.uploads = append(s.uploads, key)
	return nil
}

func (s *stubStore) Remove(ctx context.Context, key string) error {
	s.removed = append(s.removed, key)
	return nil
}

func (s *stubStore) Presign(ctx context.Context, key string, expiry time.Duration) (string, error) {
	if s.presignFn != nil {
		return s.presignFn(key)
	}
	return "https://signed.example/" + key, nil
}

// stubStrategy is a scriptable creation strategy.
type stubStrategy struct {
	canHandle bool
	createFn  func(ctx context.Context, userID string, in NewTaskInput) (dom.Task, error)
}

func (s *stubStrategy) CanHandle() bool { return s.canHandle }

func (s *stubStrategy) Create(ctx context.Context, userID string, in NewTaskInput) (dom.Task, error) {
	if s.createFn == nil {
		return dom.Task{}, errors.New("unexpected Create call")
	}
	return s.createFn(ctx, userID, in)
}
