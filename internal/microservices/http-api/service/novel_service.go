package service

import (
	"context"

	"novelhub/internal/microservices/http-api/dto"
	"novelhub/internal/microservices/http-api/models"
	"novelhub/internal/microservices/http-api/repository"
	"novelhub/internal/shared"
)

type NovelService interface {
	Create(ctx context.Context, caller *shared.Principal, req dto.CreateNovelRequest) (*models.Novel, error)
	Update(ctx context.Context, caller *shared.Principal, novelID string, req dto.UpdateNovelRequest) (*models.Novel, error)
	Delete(ctx context.Context, caller *shared.Principal, novelID string) error
	Get(ctx context.Context, caller *shared.Principal, novelID string) (*dto.NovelDetailResponse, error)
	Search(ctx context.Context, q dto.NovelSearchQuery) ([]models.Novel, error)
	ListGenres(ctx context.Context) ([]models.Genre, error)
	Dashboard(ctx context.Context, caller *shared.Principal) (*dto.DashboardResponse, error)
	Manage(ctx context.Context, caller *shared.Principal, novelID string) (*dto.NovelDetailResponse, error)
}

type novelService struct {
	users    UserService
	novels   repository.NovelRepository
	chapters repository.ChapterRepository
	genres   repository.GenreRepository
}

func NewNovelService(users UserService, novels repository.NovelRepository, chapters repository.ChapterRepository, genres repository.GenreRepository) NovelService {
	return &novelService{users: users, novels: novels, chapters: chapters, genres: genres}
}

func (s *novelService) Create(ctx context.Context, caller *shared.Principal, req dto.CreateNovelRequest) (*models.Novel, error) {
	author, err := s.users.Resolve(ctx, caller)
	if err != nil {
		return nil, err
	}
	req.Normalize()
	if err := validate(req); err != nil {
		return nil, err
	}
	if err := s.checkGenres(ctx, req.GenreIDs); err != nil {
		return nil, err
	}

	novel := &models.Novel{
		Title:       req.Title,
		Description: req.Description,
		CoverImage:  req.CoverImage,
		Status:      models.NovelOngoing,
		AuthorID:    author.ID,
	}
	if err := s.novels.Create(ctx, novel, req.GenreIDs, req.Tags); err != nil {
		return nil, err
	}
	return s.novels.GetDetail(ctx, novel.ID)
}

func (s *novelService) Update(ctx context.Context, caller *shared.Principal, novelID string, req dto.UpdateNovelRequest) (*models.Novel, error) {
	if _, _, err := s.owned(ctx, caller, novelID); err != nil {
		return nil, err
	}
	req.Normalize()
	if err := validate(req); err != nil {
		return nil, err
	}
	if req.GenreIDs != nil {
		if err := s.checkGenres(ctx, *req.GenreIDs); err != nil {
			return nil, err
		}
	}

	upd := repository.NovelUpdate{
		Fields:   req.Fields(),
		GenreIDs: req.GenreIDs,
		Tags:     req.Tags,
	}
	if err := s.novels.Update(ctx, novelID, upd); err != nil {
		return nil, notFoundOr(err, ErrNovelNotFound)
	}
	return s.novels.GetDetail(ctx, novelID)
}

func (s *novelService) Delete(ctx context.Context, caller *shared.Principal, novelID string) error {
	if _, _, err := s.owned(ctx, caller, novelID); err != nil {
		return err
	}
	return notFoundOr(s.novels.Delete(ctx, novelID), ErrNovelNotFound)
}

// Get returns the public novel page. Drafts are listed only for the author.
func (s *novelService) Get(ctx context.Context, caller *shared.Principal, novelID string) (*dto.NovelDetailResponse, error) {
	if err := parseID(novelID); err != nil {
		return nil, err
	}
	novel, err := s.novels.GetDetail(ctx, novelID)
	if err != nil {
		return nil, notFoundOr(err, ErrNovelNotFound)
	}
	viewer, err := s.users.Lookup(ctx, caller)
	if err != nil {
		return nil, err
	}
	isAuthor := viewer != nil && viewer.ID == novel.AuthorID
	chapters, err := s.chapters.ListByNovel(ctx, novelID, !isAuthor)
	if err != nil {
		return nil, err
	}
	return &dto.NovelDetailResponse{Novel: novel, Chapters: chapters, IsAuthor: isAuthor}, nil
}

func (s *novelService) Search(ctx context.Context, q dto.NovelSearchQuery) ([]models.Novel, error) {
	if err := validate(q); err != nil {
		return nil, err
	}
	filter := repository.NovelFilter{
		Query:   q.Query,
		GenreID: q.GenreID,
		Tag:     q.Tag,
		Sort:    repository.SortNewest,
	}
	if q.Sort == string(repository.SortPopular) {
		filter.Sort = repository.SortPopular
	}
	novels, err := s.novels.Search(ctx, filter)
	if err != nil {
		return nil, err
	}
	if novels == nil {
		novels = []models.Novel{}
	}
	return novels, nil
}

func (s *novelService) ListGenres(ctx context.Context) ([]models.Genre, error) {
	return s.genres.GetAll(ctx)
}

// Dashboard lists the caller's novels, most recently updated first.
func (s *novelService) Dashboard(ctx context.Context, caller *shared.Principal) (*dto.DashboardResponse, error) {
	user, err := s.users.Resolve(ctx, caller)
	if err != nil {
		return nil, err
	}
	novels, err := s.novels.ListByAuthor(ctx, user.ID, repository.OrderUpdatedDesc)
	if err != nil {
		return nil, err
	}
	resp := &dto.DashboardResponse{Novels: novels, TotalNovels: len(novels)}
	if resp.Novels == nil {
		resp.Novels = []models.Novel{}
	}
	for _, n := range novels {
		resp.TotalChapters += n.ChapterCount
	}
	return resp, nil
}

// Manage is the author-only view of a novel including drafts.
func (s *novelService) Manage(ctx context.Context, caller *shared.Principal, novelID string) (*dto.NovelDetailResponse, error) {
	if _, _, err := s.owned(ctx, caller, novelID); err != nil {
		return nil, err
	}
	novel, err := s.novels.GetDetail(ctx, novelID)
	if err != nil {
		return nil, notFoundOr(err, ErrNovelNotFound)
	}
	chapters, err := s.chapters.ListByNovel(ctx, novelID, false)
	if err != nil {
		return nil, err
	}
	return &dto.NovelDetailResponse{Novel: novel, Chapters: chapters, IsAuthor: true}, nil
}

// owned resolves the caller and checks it authored the novel, in that order:
// authentication, id format, existence, ownership.
func (s *novelService) owned(ctx context.Context, caller *shared.Principal, novelID string) (*models.User, *models.Novel, error) {
	return ownedNovel(ctx, s.users, s.novels, caller, novelID)
}

func ownedNovel(ctx context.Context, users UserService, novels repository.NovelRepository, caller *shared.Principal, novelID string) (*models.User, *models.Novel, error) {
	if err := requireCaller(caller); err != nil {
		return nil, nil, err
	}
	if err := parseID(novelID); err != nil {
		return nil, nil, err
	}
	user, err := users.Resolve(ctx, caller)
	if err != nil {
		return nil, nil, err
	}
	novel, err := novels.GetByID(ctx, novelID)
	if err != nil {
		return nil, nil, notFoundOr(err, ErrNovelNotFound)
	}
	if novel.AuthorID != user.ID {
		return nil, nil, ErrNotNovelAuthor
	}
	return user, novel, nil
}

func (s *novelService) checkGenres(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	unique := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		unique[id] = struct{}{}
	}
	n, err := s.genres.CountByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if n != int64(len(unique)) {
		return ErrUnknownGenre
	}
	return nil
}
