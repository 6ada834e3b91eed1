package service

import (
	"Patchouli/internal/api/config"
	"Patchouli/internal/api/dto"
	"Patchouli/internal/model"
	"Patchouli/internal/pkg/es"
	"Patchouli/internal/pkg/kafka"
	"Patchouli/internal/repository"
	"context"
	log "log/slog"
	"strings"
	"time"
)

// ClueTimeout 投稿路径上线索生成的预算，超时放弃但不阻塞投稿
const ClueTimeout = 3 * time.Second

// ClueGenerator 检索线索生成器，产出仅作辅助
type ClueGenerator interface {
	Generate(ctx context.Context, body string) (string, error)
}

type PostService interface {
	SubmitPost(ctx context.Context, userID uint64, postDTO *dto.PostBaseDTO) (*dto.PostDTO, bool, error)
	EditPost(ctx context.Context, userID uint64, postID uint64, postDTO *dto.PostBaseDTO) (bool, error)
	DeletePost(ctx context.Context, userID uint64, postID uint64) error
	ApprovePost(ctx context.Context, userID uint64, postID uint64) error
	RejectPost(ctx context.Context, userID uint64, postID uint64) error
	GetPost(ctx context.Context, userID uint64, postID uint64) (*dto.PostDTO, error)
	GetPostSelf(ctx context.Context, userID uint64, page, pageSize int) (*dto.PostFeedDTO, error)
	GetReviewPosts(ctx context.Context, userID uint64, lastID uint64, pageSize int) (*dto.PostFeedDTO, error)
	LastestPost(ctx context.Context, page, pageSize int) (*dto.PostFeedDTO, error)
}

type postServiceImpl struct {
	postDBRepo repository.PostRepo
	postESRepo es.PostRepo
	userRepo   repository.UserRepo
	clueGen    ClueGenerator
	producer   kafka.EventProducer
}

func NewPostService(
	postDBRepo repository.PostRepo,
	postESRepo es.PostRepo,
	userRepo repository.UserRepo,
	clueGen ClueGenerator,
	producer kafka.EventProducer,
) PostService {
	return &postServiceImpl{
		postDBRepo: postDBRepo,
		postESRepo: postESRepo,
		userRepo:   userRepo,
		clueGen:    clueGen,
		producer:   producer,
	}
}

// requireWriter 写入操作的统一前置检查：已登录且未封禁
func (s *postServiceImpl) requireWriter(ctx context.Context, userID uint64) (*model.User, error) {
	if userID == 0 {
		return nil, ErrUnauthenticated
	}
	user, err := s.userRepo.GetUserById(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUnauthenticated
	}
	if user.IsBan {
		return nil, ErrBanned
	}
	return user, nil
}

// validatePost 内容校验：标题/正文非空、标签在词表内、附件类型合法
func validatePost(postDTO *dto.PostBaseDTO) error {
	if strings.TrimSpace(postDTO.Title) == "" {
		return ErrTitleEmpty
	}
	if strings.TrimSpace(postDTO.Body) == "" {
		return ErrBodyEmpty
	}

	allowed := make(map[string]struct{}, len(config.Cfg.Moderation.AllowedTags))
	for _, tag := range config.Cfg.Moderation.AllowedTags {
		allowed[tag] = struct{}{}
	}
	for _, tag := range postDTO.Tags {
		if _, ok := allowed[tag]; !ok {
			return ErrTagNotAllowed
		}
	}

	for _, attachment := range postDTO.Attachments {
		if attachment.Kind != model.AttachmentKindLink && attachment.Kind != model.AttachmentKindFile {
			return ErrAttachmentKind
		}
	}
	return nil
}

func toTagRows(tags []string) []*model.PostTag {
	rows := make([]*model.PostTag, 0, len(tags))
	for _, tag := range tags {
		rows = append(rows, &model.PostTag{Name: tag})
	}
	return rows
}

func toAttachmentRows(attachments []dto.AttachmentDTO) []*model.PostAttachment {
	rows := make([]*model.PostAttachment, 0, len(attachments))
	for i, a := range attachments {
		rows = append(rows, &model.PostAttachment{
			Name:     a.Name,
			Kind:     a.Kind,
			URL:      a.URL,
			Position: i,
		})
	}
	return rows
}

// generateClue 限时生成检索线索。失败只降级，不影响主流程
func (s *postServiceImpl) generateClue(ctx context.Context, body string) (*string, bool) {
	timeoutCtx, cancel := context.WithTimeout(ctx, ClueTimeout)
	defer cancel()

	clue, err := s.clueGen.Generate(timeoutCtx, body)
	if err != nil || clue == "" {
		log.WarnContext(ctx, "检索线索生成失败，本次投稿降级", "err", err)
		return nil, true
	}
	return &clue, false
}

func (s *postServiceImpl) emitEvent(ctx context.Context, eventType string, post *model.Post) {
	event := &kafka.PostEvent{
		Type:     eventType,
		PostID:   post.ID,
		AuthorID: post.AuthorID,
		Status:   post.Status,
		Title:    post.Title,
		TS:       time.Now().UnixMilli(),
	}
	if err := s.producer.EmitPostEvent(ctx, event); err != nil {
		log.ErrorContext(ctx, "生命周期事件发送失败", "type", eventType, "post_id", post.ID, "err", err)
	}
}

// SubmitPost 投稿。新帖一律进入待审核态，返回值第二位表示线索生成是否降级
func (s *postServiceImpl) SubmitPost(ctx context.Context, userID uint64, postDTO *dto.PostBaseDTO) (*dto.PostDTO, bool, error) {
	user, err := s.requireWriter(ctx, userID)
	if err != nil {
		return nil, false, err
	}
	if err = validatePost(postDTO); err != nil {
		return nil, false, err
	}

	clues, degraded := s.generateClue(ctx, postDTO.Body)

	post := &model.Post{
		AuthorID:    userID,
		Title:       postDTO.Title,
		Body:        postDTO.Body,
		SearchClues: clues,
		Status:      model.PostStatusPending,
	}
	if err = s.postDBRepo.CreatePost(ctx, post, toTagRows(postDTO.Tags), toAttachmentRows(postDTO.Attachments)); err != nil {
		return nil, false, err
	}

	s.emitEvent(ctx, kafka.EventPostCreated, post)

	post.Author = *user
	item := toPostDTO(post, postDTO.Tags, postDTO.Attachments)
	return item, degraded, nil
}

// EditPost 编辑。作者只能在未发布前改，管理员任意状态可改；状态保持不变
func (s *postServiceImpl) EditPost(ctx context.Context, userID uint64, postID uint64, postDTO *dto.PostBaseDTO) (bool, error) {
	user, err := s.requireWriter(ctx, userID)
	if err != nil {
		return false, err
	}
	if err = validatePost(postDTO); err != nil {
		return false, err
	}

	post, err := s.postDBRepo.GetPost(ctx, postID)
	if err != nil {
		return false, err
	}
	// 行不存在视为不接受任何迁移
	if post == nil {
		return false, ErrInvalidTransition
	}
	if post.AuthorID != userID && !user.IsAdmin() {
		return false, ErrForbidden
	}
	// 已发布的帖子作者无权再改，只有管理员可以
	if post.AuthorID == userID && !user.IsAdmin() && post.Status == model.PostStatusPublished {
		return false, ErrForbidden
	}

	degraded := false
	var newClues *string
	if post.Body != postDTO.Body {
		newClues, degraded = s.generateClue(ctx, postDTO.Body)
	}

	post.Title = postDTO.Title
	post.Body = postDTO.Body
	if err = s.postDBRepo.UpdatePostContent(ctx, post, toTagRows(postDTO.Tags), toAttachmentRows(postDTO.Attachments)); err != nil {
		return false, err
	}

	// 生成失败保留旧线索不动，只有拿到新结果才覆盖
	if newClues != nil {
		if cErr := s.postDBRepo.UpdateSearchClues(ctx, post.ID, *newClues); cErr != nil {
			log.WarnContext(ctx, "检索线索更新失败", "post_id", post.ID, "err", cErr)
		} else {
			post.SearchClues = newClues
		}
	}

	s.emitEvent(ctx, kafka.EventPostUpdated, post)
	return degraded, nil
}

// DeletePost 删除。作者或管理员，硬删除
func (s *postServiceImpl) DeletePost(ctx context.Context, userID uint64, postID uint64) error {
	user, err := s.requireWriter(ctx, userID)
	if err != nil {
		return err
	}

	post, err := s.postDBRepo.GetPost(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrInvalidTransition
	}
	if post.AuthorID != userID && !user.IsAdmin() {
		return ErrForbidden
	}

	if err = s.postDBRepo.DeletePost(ctx, postID); err != nil {
		return err
	}

	s.emitEvent(ctx, kafka.EventPostDeleted, post)
	return nil
}

// ApprovePost 审核通过。Pending→Published 的 CAS，并发双写只有一方成功
func (s *postServiceImpl) ApprovePost(ctx context.Context, userID uint64, postID uint64) error {
	return s.moderate(ctx, userID, postID, model.PostStatusPublished, kafka.EventPostApproved)
}

// RejectPost 审核拒绝。Pending→Rejected 的 CAS
func (s *postServiceImpl) RejectPost(ctx context.Context, userID uint64, postID uint64) error {
	return s.moderate(ctx, userID, postID, model.PostStatusRejected, kafka.EventPostRejected)
}

func (s *postServiceImpl) moderate(ctx context.Context, userID uint64, postID uint64, next model.PostStatus, eventType string) error {
	user, err := s.requireWriter(ctx, userID)
	if err != nil {
		return err
	}
	if !user.IsAdmin() {
		return ErrForbidden
	}
	if !model.PostStatusPending.CanTransition(next) {
		return ErrInvalidTransition
	}

	// 先读出事件需要的作者和标题，成败以下面的 CAS 为准
	post, err := s.postDBRepo.GetPost(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrInvalidTransition
	}

	ok, err := s.postDBRepo.UpdatePostStatus(ctx, postID, model.PostStatusPending, next)
	if err != nil {
		return err
	}
	// 行不存在与状态不符都落在这里：该帖当前不接受此迁移
	if !ok {
		return ErrInvalidTransition
	}

	post.Status = next
	s.emitEvent(ctx, eventType, post)
	return nil
}

// GetPost 帖子详情。非作者非管理员只能看已发布的
func (s *postServiceImpl) GetPost(ctx context.Context, userID uint64, postID uint64) (*dto.PostDTO, error) {
	post, err := s.postDBRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	if post.Status != model.PostStatusPublished && post.AuthorID != userID {
		viewer, vErr := s.userRepo.GetUserById(ctx, userID)
		if vErr != nil || viewer == nil || !viewer.IsAdmin() {
			return nil, ErrPostNotFound
		}
	}

	item := toPostDTOFromModel(post)
	if post.AuthorID == userID {
		status := int8(post.Status)
		item.Status = &status
	}
	return item, nil
}

// GetPostSelf 自己的帖子列表，含各个状态
func (s *postServiceImpl) GetPostSelf(ctx context.Context, userID uint64, page, pageSize int) (*dto.PostFeedDTO, error) {
	if userID == 0 {
		return nil, ErrUnauthenticated
	}

	posts, err := s.postDBRepo.GetPostsByAuthor(ctx, userID, pageSize+1, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}

	hasMore := false
	if len(posts) > pageSize {
		hasMore = true
		posts = posts[:pageSize]
	}

	items := make([]*dto.PostDTO, 0, len(posts))
	for _, post := range posts {
		item := toPostDTOFromModel(post)
		status := int8(post.Status)
		item.Status = &status
		items = append(items, item)
	}

	return &dto.PostFeedDTO{List: items, HasMore: hasMore}, nil
}

// GetReviewPosts 审核队列：待审核帖子按 ID 游标分页
func (s *postServiceImpl) GetReviewPosts(ctx context.Context, userID uint64, lastID uint64, pageSize int) (*dto.PostFeedDTO, error) {
	user, err := s.requireWriter(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin() {
		return nil, ErrForbidden
	}

	posts, err := s.postDBRepo.GetPostsByStatusCursor(ctx, model.PostStatusPending, lastID, pageSize+1)
	if err != nil {
		return nil, err
	}

	hasMore := false
	if len(posts) > pageSize {
		hasMore = true
		posts = posts[:pageSize]
	}

	items := make([]*dto.PostDTO, 0, len(posts))
	var cursor uint64
	for _, post := range posts {
		item := toPostDTOFromModel(post)
		status := int8(post.Status)
		item.Status = &status
		items = append(items, item)
		cursor = post.ID
	}

	return &dto.PostFeedDTO{List: items, HasMore: hasMore, LastID: cursor}, nil
}

// LastestPost 公开最新流，只含已发布帖子，走搜索索引
func (s *postServiceImpl) LastestPost(ctx context.Context, page, pageSize int) (*dto.PostFeedDTO, error) {
	from := (page - 1) * pageSize
	posts, err := s.postESRepo.GetLatestPublished(ctx, from, pageSize+1)
	if err != nil {
		return nil, err
	}
	return toFeedDTOFromES(posts, pageSize), nil
}
