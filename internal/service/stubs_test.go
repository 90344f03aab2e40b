package service

import (
	"context"
	"errors"
	"testing"

	"skillshare/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	createFn        func(context.Context, *models.User) error
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	listFn          func(context.Context) ([]models.User, error)
	updateProfileFn func(context.Context, *models.User) error
	deleteFn        func(context.Context, uint) error
}

func (s *userRepoStub) Create(ctx context.Context, u *models.User) error { return s.createFn(ctx, u) }
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) List(ctx context.Context) ([]models.User, error) { return s.listFn(ctx) }
func (s *userRepoStub) UpdateProfile(ctx context.Context, u *models.User) error {
	return s.updateProfileFn(ctx, u)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error { return s.deleteFn(ctx, id) }

// usersWithIDs returns a user repo in which exactly ids exist.
func usersWithIDs(ids ...uint) *userRepoStub {
	known := make(map[uint]bool, len(ids))
	for _, id := range ids {
		known[id] = true
	}
	return &userRepoStub{
		createFn: func(_ context.Context, _ *models.User) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			if !known[id] {
				return nil, models.NewNotFoundError("User", id)
			}
			return &models.User{ID: id}, nil
		},
		getByEmailFn:    func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		listFn:          func(_ context.Context) ([]models.User, error) { return nil, nil },
		updateProfileFn: func(_ context.Context, _ *models.User) error { return nil },
		deleteFn:        func(_ context.Context, _ uint) error { return nil },
	}
}

type edge struct{ follower, following uint }

// followRepoStub keeps edges in memory.
type followRepoStub struct {
	edges  map[edge]bool
	addErr error
}

func newFollowRepoStub() *followRepoStub {
	return &followRepoStub{edges: make(map[edge]bool)}
}

func (s *followRepoStub) Add(_ context.Context, follower, following uint) (bool, error) {
	if s.addErr != nil {
		return false, s.addErr
	}
	e := edge{follower, following}
	if s.edges[e] {
		return false, nil
	}
	s.edges[e] = true
	return true, nil
}
func (s *followRepoStub) Remove(_ context.Context, follower, following uint) error {
	delete(s.edges, edge{follower, following})
	return nil
}
func (s *followRepoStub) FollowerIDs(_ context.Context, userID uint) ([]uint, error) {
	ids := []uint{}
	for e := range s.edges {
		if e.following == userID {
			ids = append(ids, e.follower)
		}
	}
	return ids, nil
}
func (s *followRepoStub) FollowingIDs(_ context.Context, userID uint) ([]uint, error) {
	ids := []uint{}
	for e := range s.edges {
		if e.follower == userID {
			ids = append(ids, e.following)
		}
	}
	return ids, nil
}
func (s *followRepoStub) Counts(ctx context.Context, userID uint) (int64, int64, error) {
	followers, _ := s.FollowerIDs(ctx, userID)
	following, _ := s.FollowingIDs(ctx, userID)
	return int64(len(followers)), int64(len(following)), nil
}

// postRepoStub keeps posts and likes in memory. Function fields override behaviour.
type postRepoStub struct {
	posts  map[uint]*models.Post
	likes  map[uint][]uint
	nextID uint

	createFn func(context.Context, *models.Post) error
	getErr   error
}

func newPostRepoStub() *postRepoStub {
	return &postRepoStub{posts: make(map[uint]*models.Post), likes: make(map[uint][]uint), nextID: 1}
}

func (s *postRepoStub) Create(ctx context.Context, p *models.Post) error {
	if s.createFn != nil {
		return s.createFn(ctx, p)
	}
	p.ID = s.nextID
	s.nextID++
	cp := *p
	s.posts[p.ID] = &cp
	return nil
}
func (s *postRepoStub) GetByID(_ context.Context, id uint) (*models.Post, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	p, ok := s.posts[id]
	if !ok {
		return nil, models.NewNotFoundError("Post", id)
	}
	cp := *p
	cp.LikedUserIDs = append([]uint{}, s.likes[id]...)
	return &cp, nil
}
func (s *postRepoStub) List(_ context.Context) ([]models.Post, error) {
	out := []models.Post{}
	for _, p := range s.posts {
		out = append(out, *p)
	}
	return out, nil
}
func (s *postRepoStub) Update(_ context.Context, p *models.Post) error {
	if _, ok := s.posts[p.ID]; !ok {
		return models.NewNotFoundError("Post", p.ID)
	}
	cp := *p
	s.posts[p.ID] = &cp
	return nil
}
func (s *postRepoStub) Delete(_ context.Context, id uint) error {
	delete(s.posts, id)
	delete(s.likes, id)
	return nil
}
func (s *postRepoStub) AddLike(_ context.Context, postID, userID uint) (bool, error) {
	for _, id := range s.likes[postID] {
		if id == userID {
			return false, nil
		}
	}
	s.likes[postID] = append(s.likes[postID], userID)
	return true, nil
}
func (s *postRepoStub) RemoveLike(_ context.Context, postID, userID uint) error {
	kept := []uint{}
	for _, id := range s.likes[postID] {
		if id != userID {
			kept = append(kept, id)
		}
	}
	s.likes[postID] = kept
	return nil
}
func (s *postRepoStub) LikedUserIDs(_ context.Context, postID uint) ([]uint, error) {
	return append([]uint{}, s.likes[postID]...), nil
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn     func(context.Context, *models.Comment) error
	getByIDFn    func(context.Context, uint) (*models.Comment, error)
	listByPostFn func(context.Context, uint) ([]models.Comment, error)
	updateFn     func(context.Context, *models.Comment) error
	deleteFn     func(context.Context, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, c *models.Comment) error { return s.createFn(ctx, c) }
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint) ([]models.Comment, error) {
	return s.listByPostFn(ctx, postID)
}
func (s *commentRepoStub) Update(ctx context.Context, c *models.Comment) error { return s.updateFn(ctx, c) }
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error          { return s.deleteFn(ctx, id) }

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn: func(_ context.Context, c *models.Comment) error {
			c.ID = 1
			return nil
		},
		getByIDFn:    func(_ context.Context, id uint) (*models.Comment, error) { return &models.Comment{ID: id}, nil },
		listByPostFn: func(_ context.Context, _ uint) ([]models.Comment, error) { return []models.Comment{}, nil },
		updateFn:     func(_ context.Context, _ *models.Comment) error { return nil },
		deleteFn:     func(_ context.Context, _ uint) error { return nil },
	}
}

// notificationRepoStub records created notifications.
type notificationRepoStub struct {
	created   []models.Notification
	createErr error
}

func (s *notificationRepoStub) Create(_ context.Context, n *models.Notification) error {
	if s.createErr != nil {
		return s.createErr
	}
	n.ID = uint(len(s.created) + 1)
	s.created = append(s.created, *n)
	return nil
}
func (s *notificationRepoStub) GetByID(_ context.Context, id uint) (*models.Notification, error) {
	for i := range s.created {
		if s.created[i].ID == id {
			return &s.created[i], nil
		}
	}
	return nil, models.NewNotFoundError("Notification", id)
}
func (s *notificationRepoStub) ListByRecipient(_ context.Context, recipientID uint) ([]models.Notification, error) {
	out := []models.Notification{}
	for i := len(s.created) - 1; i >= 0; i-- {
		if s.created[i].RecipientID == recipientID {
			out = append(out, s.created[i])
		}
	}
	return out, nil
}
func (s *notificationRepoStub) Delete(_ context.Context, id uint) error {
	for i := range s.created {
		if s.created[i].ID == id {
			s.created = append(s.created[:i], s.created[i+1:]...)
			break
		}
	}
	return nil
}

// publisherStub records published notifications.
type publisherStub struct {
	published []models.Notification
	err       error
}

func (p *publisherStub) Publish(_ context.Context, n *models.Notification) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, *n)
	return nil
}

func newNotifications() (*NotificationService, *notificationRepoStub) {
	repo := &notificationRepoStub{}
	return NewNotificationService(repo, nil), repo
}

// assertAppError asserts that err is an AppError carrying code.
func assertAppError(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}
