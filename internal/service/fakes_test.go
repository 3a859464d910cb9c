package service

import (
	"context"
	"strings"
	"sync"

	"photoshare/internal/model"
)

// fakeUserStore is an in-memory UserStore for service tests.
type fakeUserStore struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[int64]model.User{}}
}

func (f *fakeUserStore) add(u model.User) model.User {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	u.ID = f.nextID
	f.users[u.ID] = u
	return u
}

func (f *fakeUserStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.users)
}

func (f *fakeUserStore) FindByID(_ context.Context, id int64) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[id]
	if !ok {
		return model.User{}, model.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if strings.EqualFold(u.Email, strings.TrimSpace(email)) {
			return u, nil
		}
	}
	return model.User{}, model.ErrUserNotFound
}

func (f *fakeUserStore) ExistsByEmail(_ context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if strings.EqualFold(u.Email, strings.TrimSpace(email)) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserStore) Create(_ context.Context, u model.User) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	u.ID = f.nextID
	f.users[u.ID] = u
	return u.ID, nil
}

func (f *fakeUserStore) Update(_ context.Context, u model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	existing, ok := f.users[u.ID]
	if !ok {
		return model.ErrUserNotFound
	}
	u.PasswordHash = existing.PasswordHash
	u.ProfilePic = existing.ProfilePic
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserStore) UpdatePassword(_ context.Context, userID int64, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[userID]
	if !ok {
		return model.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	f.users[userID] = u
	return nil
}

func (f *fakeUserStore) UpdateProfilePic(_ context.Context, userID int64, ref string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[userID]
	if !ok {
		return model.ErrUserNotFound
	}
	u.ProfilePic = &ref
	f.users[userID] = u
	return nil
}

func (f *fakeUserStore) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.users[id]; !ok {
		return model.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserStore) List(_ context.Context) ([]model.PublicUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]model.PublicUser, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u.Public())
	}
	return out, nil
}

// fakePhotoStore is an in-memory PhotoStore for service tests.
type fakePhotoStore struct {
	mu     sync.Mutex
	nextID int64
	photos map[int64]model.Photo
}

func newFakePhotoStore() *fakePhotoStore {
	return &fakePhotoStore{photos: map[int64]model.Photo{}}
}

func (f *fakePhotoStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.photos)
}

func (f *fakePhotoStore) Create(_ context.Context, p model.Photo) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	p.ID = f.nextID
	f.photos[p.ID] = p
	return p.ID, nil
}

func (f *fakePhotoStore) FindByID(_ context.Context, id int64) (model.Photo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.photos[id]
	if !ok {
		return model.Photo{}, model.ErrPhotoNotFound
	}
	return p, nil
}

func (f *fakePhotoStore) ListByUserID(_ context.Context, userID int64) ([]model.Photo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]model.Photo, 0)
	for _, p := range f.photos {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}
