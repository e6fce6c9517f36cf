package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"novelhub/internal/microservices/http-api/models"
	"novelhub/internal/microservices/http-api/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// memStore is a map-backed stand-in for the postgres repositories, enough to drive
// whole flows through the services.
type memStore struct {
	mu        sync.Mutex
	users     map[string]*models.User
	novels    map[string]*models.Novel
	chapters  map[string]*models.Chapter
	bookmarks map[[2]string]time.Time
	history   map[[2]string]*models.ReadingHistory
}

func newMemStore() *memStore {
	return &memStore{
		users:     map[string]*models.User{},
		novels:    map[string]*models.Novel{},
		chapters:  map[string]*models.Chapter{},
		bookmarks: map[[2]string]time.Time{},
		history:   map[[2]string]*models.ReadingHistory{},
	}
}

type memUsers struct{ *memStore }

func (m memUsers) FindByID(_ context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		c := *u
		return &c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m memUsers) FindByExternalID(_ context.Context, externalID string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ExternalID == externalID {
			c := *u
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m memUsers) CreateIfAbsent(ctx context.Context, user *models.User) (*models.User, error) {
	if u, err := m.FindByExternalID(ctx, user.ExternalID); err == nil {
		return u, nil
	}
	m.mu.Lock()
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	m.users[user.ID] = user
	m.mu.Unlock()
	return m.FindByID(ctx, user.ID)
}

func (m memUsers) Upsert(ctx context.Context, user *models.User) (*models.User, error) {
	return m.CreateIfAbsent(ctx, user)
}

func (m memUsers) UpdateByExternalID(context.Context, string, string, *string, *string) error {
	return nil
}

func (m memUsers) DeleteByExternalID(context.Context, string) error { return nil }

func (m memUsers) UpdateName(ctx context.Context, id, name string) (*models.User, error) {
	m.mu.Lock()
	if u, ok := m.users[id]; ok {
		u.Name = &name
	}
	m.mu.Unlock()
	return m.FindByID(ctx, id)
}

func (m memUsers) Stats(context.Context, string) (*repository.UserStats, error) {
	return &repository.UserStats{}, nil
}

type memNovels struct{ *memStore }

func (m memNovels) Create(_ context.Context, novel *models.Novel, _ []string, tags []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	novel.ID = uuid.NewString()
	novel.CreatedAt = time.Now()
	novel.UpdatedAt = novel.CreatedAt
	for _, t := range tags {
		novel.Tags = append(novel.Tags, models.Tag{ID: uuid.NewString(), Name: t, NovelID: novel.ID})
	}
	m.novels[novel.ID] = novel
	return nil
}

func (m memNovels) GetByID(_ context.Context, id string) (*models.Novel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n, ok := m.novels[id]; ok {
		c := *n
		return &c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m memNovels) GetDetail(ctx context.Context, id string) (*models.Novel, error) {
	n, err := m.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ch := range m.chapters {
		if ch.NovelID == id {
			n.ChapterCount++
		}
	}
	return n, nil
}

func (m memNovels) Update(_ context.Context, id string, upd repository.NovelUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.novels[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if v, ok := upd.Fields["title"]; ok {
		n.Title = v.(string)
	}
	n.UpdatedAt = time.Now()
	return nil
}

func (m memNovels) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.novels[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.novels, id)
	for cid, ch := range m.chapters {
		if ch.NovelID == id {
			delete(m.chapters, cid)
		}
	}
	return nil
}

func (m memNovels) Search(context.Context, repository.NovelFilter) ([]models.Novel, error) {
	return nil, nil
}

func (m memNovels) ListByAuthor(context.Context, string, string) ([]models.Novel, error) {
	return nil, nil
}

type memChapters struct{ *memStore }

func (m memChapters) CreateNext(_ context.Context, chapter *models.Chapter) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.novels[chapter.NovelID]; !ok {
		return gorm.ErrRecordNotFound
	}
	max := 0
	for _, ch := range m.chapters {
		if ch.NovelID == chapter.NovelID && ch.Number > max {
			max = ch.Number
		}
	}
	chapter.ID = uuid.NewString()
	chapter.Number = max + 1
	c := *chapter
	m.chapters[chapter.ID] = &c
	return nil
}

func (m memChapters) GetByID(_ context.Context, id string) (*models.Chapter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ch, ok := m.chapters[id]; ok {
		c := *ch
		return &c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m memChapters) Update(ctx context.Context, id string, fields map[string]any) (*models.Chapter, error) {
	m.mu.Lock()
	ch, ok := m.chapters[id]
	if ok {
		if v, set := fields["is_published"]; set {
			ch.IsPublished = v.(bool)
		}
	}
	m.mu.Unlock()
	return m.GetByID(ctx, id)
}

func (m memChapters) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.chapters[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.chapters, id)
	return nil
}

func (m memChapters) ListByNovel(_ context.Context, novelID string, publishedOnly bool) ([]models.Chapter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Chapter
	for _, ch := range m.chapters {
		if ch.NovelID != novelID || (publishedOnly && !ch.IsPublished) {
			continue
		}
		c := *ch
		c.Content = ""
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

func (m memChapters) Neighbors(context.Context, string, int) (*models.Chapter, *models.Chapter, error) {
	return nil, nil, nil
}

type memBookmarks struct{ *memStore }

func (m memBookmarks) Add(_ context.Context, userID, novelID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := [2]string{userID, novelID}
	if _, ok := m.bookmarks[key]; ok {
		return false, nil
	}
	m.bookmarks[key] = time.Now()
	return true, nil
}

func (m memBookmarks) Remove(_ context.Context, userID, novelID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := [2]string{userID, novelID}
	if _, ok := m.bookmarks[key]; !ok {
		return 0, nil
	}
	delete(m.bookmarks, key)
	return 1, nil
}

func (m memBookmarks) List(context.Context, string) ([]models.Bookmark, error) { return nil, nil }

func (m memBookmarks) Exists(_ context.Context, userID, novelID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.bookmarks[[2]string{userID, novelID}]
	return ok, nil
}

type memHistory struct{ *memStore }

func (m memHistory) Upsert(_ context.Context, userID, chapterID string, readAt time.Time) (*models.ReadingHistory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := [2]string{userID, chapterID}
	h, ok := m.history[key]
	if !ok {
		h = &models.ReadingHistory{ID: uuid.NewString(), UserID: userID, ChapterID: chapterID}
		m.history[key] = h
	}
	h.ReadAt = readAt
	c := *h
	return &c, nil
}

func (m memHistory) LatestInNovel(_ context.Context, userID, novelID string) (*models.ReadingHistory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var best *models.ReadingHistory
	for key, h := range m.history {
		ch := m.chapters[key[1]]
		if key[0] != userID || ch == nil || ch.NovelID != novelID {
			continue
		}
		if best == nil || h.ReadAt.After(best.ReadAt) {
			best = h
		}
	}
	if best == nil {
		return nil, gorm.ErrRecordNotFound
	}
	c := *best
	chapter := *m.chapters[c.ChapterID]
	c.Chapter = &chapter
	return &c, nil
}

func (m memHistory) ListByUser(context.Context, string) ([]models.ReadingHistory, error) {
	return nil, nil
}
