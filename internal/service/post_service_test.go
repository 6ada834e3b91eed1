package service

import (
	"Patchouli/internal/api/config"
	"Patchouli/internal/api/dto"
	"Patchouli/internal/model"
	"Patchouli/internal/pkg/es"
	"Patchouli/internal/pkg/kafka"
	"context"
	"errors"
	"testing"
)

// --- mocks ---

type mockPostRepo struct {
	createPostFn    func(ctx context.Context, post *model.Post, tags []*model.PostTag, attachments []*model.PostAttachment) error
	getPostFn       func(ctx context.Context, id uint64) (*model.Post, error)
	getByStatusFn   func(ctx context.Context, status model.PostStatus, lastID uint64, limit int) ([]*model.Post, error)
	getByAuthorFn   func(ctx context.Context, authorID uint64, limit, offset int) ([]*model.Post, error)
	updateContentFn func(ctx context.Context, post *model.Post, tags []*model.PostTag, attachments []*model.PostAttachment) error
	updateStatusFn  func(ctx context.Context, id uint64, expected, next model.PostStatus) (bool, error)
	updateCluesFn   func(ctx context.Context, id uint64, clues string) error
	deletePostFn    func(ctx context.Context, id uint64) error
}

func (m *mockPostRepo) CreatePost(ctx context.Context, post *model.Post, tags []*model.PostTag, attachments []*model.PostAttachment) error {
	if m.createPostFn != nil {
		return m.createPostFn(ctx, post, tags, attachments)
	}
	return nil
}

func (m *mockPostRepo) GetPost(ctx context.Context, id uint64) (*model.Post, error) {
	if m.getPostFn != nil {
		return m.getPostFn(ctx, id)
	}
	return nil, nil
}

func (m *mockPostRepo) GetPostsByStatusCursor(ctx context.Context, status model.PostStatus, lastID uint64, limit int) ([]*model.Post, error) {
	if m.getByStatusFn != nil {
		return m.getByStatusFn(ctx, status, lastID, limit)
	}
	return nil, nil
}

func (m *mockPostRepo) GetPostsByAuthor(ctx context.Context, authorID uint64, limit, offset int) ([]*model.Post, error) {
	if m.getByAuthorFn != nil {
		return m.getByAuthorFn(ctx, authorID, limit, offset)
	}
	return nil, nil
}

func (m *mockPostRepo) UpdatePostContent(ctx context.Context, post *model.Post, tags []*model.PostTag, attachments []*model.PostAttachment) error {
	if m.updateContentFn != nil {
		return m.updateContentFn(ctx, post, tags, attachments)
	}
	return nil
}

func (m *mockPostRepo) UpdatePostStatus(ctx context.Context, id uint64, expected, next model.PostStatus) (bool, error) {
	if m.updateStatusFn != nil {
		return m.updateStatusFn(ctx, id, expected, next)
	}
	return true, nil
}

func (m *mockPostRepo) UpdateSearchClues(ctx context.Context, id uint64, clues string) error {
	if m.updateCluesFn != nil {
		return m.updateCluesFn(ctx, id, clues)
	}
	return nil
}

func (m *mockPostRepo) DeletePost(ctx context.Context, id uint64) error {
	if m.deletePostFn != nil {
		return m.deletePostFn(ctx, id)
	}
	return nil
}

type mockUserRepo struct {
	getUserByIdFn func(ctx context.Context, id uint64) (*model.User, error)
}

func (m *mockUserRepo) CreateUser(ctx context.Context, user *model.User) error { return nil }

func (m *mockUserRepo) GetUserById(ctx context.Context, id uint64) (*model.User, error) {
	if m.getUserByIdFn != nil {
		return m.getUserByIdFn(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepo) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return nil, nil
}

func (m *mockUserRepo) UpdateIsBan(ctx context.Context, id uint64, isBan bool) error { return nil }

type mockESRepo struct {
	searchPublishedFn func(ctx context.Context, query string, from, size int) ([]*es.PostES, error)
	searchMineFn      func(ctx context.Context, authorID uint64, query string, from, size int) ([]*es.PostES, error)
	getLatestFn       func(ctx context.Context, from, size int) ([]*es.PostES, error)
}

func (m *mockESRepo) SearchPublished(ctx context.Context, query string, from, size int) ([]*es.PostES, error) {
	if m.searchPublishedFn != nil {
		return m.searchPublishedFn(ctx, query, from, size)
	}
	return nil, nil
}

func (m *mockESRepo) SearchMine(ctx context.Context, authorID uint64, query string, from, size int) ([]*es.PostES, error) {
	if m.searchMineFn != nil {
		return m.searchMineFn(ctx, authorID, query, from, size)
	}
	return nil, nil
}

func (m *mockESRepo) GetLatestPublished(ctx context.Context, from, size int) ([]*es.PostES, error) {
	if m.getLatestFn != nil {
		return m.getLatestFn(ctx, from, size)
	}
	return nil, nil
}

func (m *mockESRepo) GetPostById(ctx context.Context, id uint64) (*es.PostES, error) {
	return nil, nil
}

func (m *mockESRepo) IndexPost(ctx context.Context, post *es.PostES, version int64) error {
	return nil
}

func (m *mockESRepo) DeletePost(ctx context.Context, id uint64) error { return nil }

type mockClueGen struct {
	generateFn func(ctx context.Context, body string) (string, error)
}

func (m *mockClueGen) Generate(ctx context.Context, body string) (string, error) {
	if m.generateFn != nil {
		return m.generateFn(ctx, body)
	}
	return "默认线索", nil
}

type mockProducer struct {
	events []*kafka.PostEvent
	emitFn func(ctx context.Context, event *kafka.PostEvent) error
}

func (m *mockProducer) EmitPostEvent(ctx context.Context, event *kafka.PostEvent) error {
	m.events = append(m.events, event)
	if m.emitFn != nil {
		return m.emitFn(ctx, event)
	}
	return nil
}

func (m *mockProducer) Close() error { return nil }

// --- helpers ---

func setupTestConfig() {
	config.Cfg = &config.Config{
		Moderation: config.ModerationConfig{
			AllowedTags: []string{"script", "block", "addon", "entity"},
		},
	}
}

func fixedUser(id uint64, role string, banned bool) *mockUserRepo {
	return &mockUserRepo{
		getUserByIdFn: func(_ context.Context, uid uint64) (*model.User, error) {
			if uid != id {
				return nil, nil
			}
			return &model.User{ID: id, Nickname: "tester", Role: role, IsBan: banned}, nil
		},
	}
}

func validDraft() *dto.PostBaseDTO {
	return &dto.PostBaseDTO{
		Title: "自定义方块的放置事件",
		Body:  "通过 onPlace 组件监听放置。",
		Tags:  []string{"block"},
	}
}

// --- tests ---

// 新投稿必须落在待审核态，不管调用方是谁
func TestSubmitPost_AlwaysPending(t *testing.T) {
	setupTestConfig()

	var created *model.Post
	postRepo := &mockPostRepo{
		createPostFn: func(_ context.Context, post *model.Post, _ []*model.PostTag, _ []*model.PostAttachment) error {
			post.ID = 42
			created = post
			return nil
		},
	}
	producer := &mockProducer{}
	svc := NewPostService(postRepo, &mockESRepo{}, fixedUser(1, model.RoleAdmin, false), &mockClueGen{}, producer)

	item, degraded, err := svc.SubmitPost(context.Background(), 1, validDraft())
	if err != nil {
		t.Fatalf("SubmitPost 失败: %v", err)
	}
	if degraded {
		t.Error("线索生成成功时不应降级")
	}
	if created == nil || created.Status != model.PostStatusPending {
		t.Fatalf("新帖状态 = %v, 期望 Pending", created.Status)
	}
	if item.ID != 42 {
		t.Errorf("返回帖子 ID = %d, 期望 42", item.ID)
	}
	if len(producer.events) != 1 || producer.events[0].Type != kafka.EventPostCreated {
		t.Errorf("期望发出一条 post_created 事件, 实际 %v", producer.events)
	}
}

// 线索生成失败只降级，投稿本身必须成功
func TestSubmitPost_ClueFailureDegrades(t *testing.T) {
	setupTestConfig()

	var created *model.Post
	postRepo := &mockPostRepo{
		createPostFn: func(_ context.Context, post *model.Post, _ []*model.PostTag, _ []*model.PostAttachment) error {
			created = post
			return nil
		},
	}
	clueGen := &mockClueGen{
		generateFn: func(ctx context.Context, _ string) (string, error) {
			return "", context.DeadlineExceeded
		},
	}
	svc := NewPostService(postRepo, &mockESRepo{}, fixedUser(1, model.RoleUser, false), clueGen, &mockProducer{})

	_, degraded, err := svc.SubmitPost(context.Background(), 1, validDraft())
	if err != nil {
		t.Fatalf("线索失败不应阻塞投稿: %v", err)
	}
	if !degraded {
		t.Error("期望降级标记为 true")
	}
	if created == nil {
		t.Fatal("帖子未创建")
	}
	if created.SearchClues != nil {
		t.Errorf("降级时线索应为空, 实际 %q", *created.SearchClues)
	}
}

// 封禁用户的写入一律拒绝
func TestSubmitPost_BannedDenied(t *testing.T) {
	setupTestConfig()

	called := false
	postRepo := &mockPostRepo{
		createPostFn: func(_ context.Context, _ *model.Post, _ []*model.PostTag, _ []*model.PostAttachment) error {
			called = true
			return nil
		},
	}
	svc := NewPostService(postRepo, &mockESRepo{}, fixedUser(7, model.RoleUser, true), &mockClueGen{}, &mockProducer{})

	_, _, err := svc.SubmitPost(context.Background(), 7, validDraft())
	if !errors.Is(err, ErrBanned) {
		t.Fatalf("err = %v, 期望 ErrBanned", err)
	}
	if called {
		t.Error("封禁用户不应触达存储层")
	}
}

func TestSubmitPost_TagOutsideVocabulary(t *testing.T) {
	setupTestConfig()

	svc := NewPostService(&mockPostRepo{}, &mockESRepo{}, fixedUser(1, model.RoleUser, false), &mockClueGen{}, &mockProducer{})

	draft := validDraft()
	draft.Tags = []string{"随便什么"}
	_, _, err := svc.SubmitPost(context.Background(), 1, draft)
	if !errors.Is(err, ErrTagNotAllowed) {
		t.Fatalf("err = %v, 期望 ErrTagNotAllowed", err)
	}
}

// 编辑权限矩阵：作者在未发布前可改，发布后只有管理员可改，外人永远不可
func TestEditPost_PermissionMatrix(t *testing.T) {
	setupTestConfig()

	cases := []struct {
		name       string
		callerID   uint64
		callerRole string
		postStatus model.PostStatus
		wantErr    error
	}{
		{"作者改待审核", 1, model.RoleUser, model.PostStatusPending, nil},
		{"作者改已拒绝", 1, model.RoleUser, model.PostStatusRejected, nil},
		{"作者改已发布", 1, model.RoleUser, model.PostStatusPublished, ErrForbidden},
		{"管理员改已发布", 9, model.RoleAdmin, model.PostStatusPublished, nil},
		{"外人改待审核", 2, model.RoleUser, model.PostStatusPending, ErrForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			postRepo := &mockPostRepo{
				getPostFn: func(_ context.Context, id uint64) (*model.Post, error) {
					return &model.Post{ID: id, AuthorID: 1, Title: "t", Body: "b", Status: tc.postStatus}, nil
				},
			}
			svc := NewPostService(postRepo, &mockESRepo{}, fixedUser(tc.callerID, tc.callerRole, false), &mockClueGen{}, &mockProducer{})

			_, err := svc.EditPost(context.Background(), tc.callerID, 10, validDraft())
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("err = %v, 期望 %v", err, tc.wantErr)
			}
		})
	}
}

// 并发审核同一帖子时 CAS 只让一方成功，另一方拿到状态冲突
func TestModerate_CASLoserGetsConflict(t *testing.T) {
	setupTestConfig()

	decided := false
	postRepo := &mockPostRepo{
		updateStatusFn: func(_ context.Context, id uint64, expected, next model.PostStatus) (bool, error) {
			if expected != model.PostStatusPending {
				t.Errorf("CAS 期望态 = %v, 应为 Pending", expected)
			}
			if decided {
				return false, nil
			}
			decided = true
			return true, nil
		},
		getPostFn: func(_ context.Context, id uint64) (*model.Post, error) {
			return &model.Post{ID: id, AuthorID: 3, Status: model.PostStatusPublished}, nil
		},
	}
	producer := &mockProducer{}
	svc := NewPostService(postRepo, &mockESRepo{}, fixedUser(9, model.RoleAdmin, false), &mockClueGen{}, producer)

	if err := svc.ApprovePost(context.Background(), 9, 10); err != nil {
		t.Fatalf("第一次审核应成功: %v", err)
	}
	err := svc.RejectPost(context.Background(), 9, 10)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("落败方 err = %v, 期望 ErrInvalidTransition", err)
	}
	if len(producer.events) != 1 || producer.events[0].Type != kafka.EventPostApproved {
		t.Errorf("只应有一条 post_approved 事件, 实际 %v", producer.events)
	}
}

func TestModerate_NonAdminForbidden(t *testing.T) {
	setupTestConfig()

	svc := NewPostService(&mockPostRepo{}, &mockESRepo{}, fixedUser(1, model.RoleUser, false), &mockClueGen{}, &mockProducer{})

	if err := svc.ApprovePost(context.Background(), 1, 10); !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, 期望 ErrForbidden", err)
	}
}

// 未发布的帖子对外人不可见，对作者可见且带状态
func TestGetPost_PendingVisibility(t *testing.T) {
	setupTestConfig()

	postRepo := &mockPostRepo{
		getPostFn: func(_ context.Context, id uint64) (*model.Post, error) {
			return &model.Post{ID: id, AuthorID: 1, Status: model.PostStatusPending}, nil
		},
	}
	svc := NewPostService(postRepo, &mockESRepo{}, fixedUser(1, model.RoleUser, false), &mockClueGen{}, &mockProducer{})

	item, err := svc.GetPost(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("作者应能看到自己的待审核帖: %v", err)
	}
	if item.Status == nil || *item.Status != int8(model.PostStatusPending) {
		t.Error("作者视角应带状态字段")
	}

	// 外人视角
	svcOther := NewPostService(postRepo, &mockESRepo{}, fixedUser(2, model.RoleUser, false), &mockClueGen{}, &mockProducer{})
	if _, err = svcOther.GetPost(context.Background(), 2, 10); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("外人 err = %v, 期望 ErrPostNotFound", err)
	}
}

// 删除事件必须在存储删除成功后发出
func TestDeletePost_EmitsEvent(t *testing.T) {
	setupTestConfig()

	postRepo := &mockPostRepo{
		getPostFn: func(_ context.Context, id uint64) (*model.Post, error) {
			return &model.Post{ID: id, AuthorID: 1, Status: model.PostStatusPublished}, nil
		},
	}
	producer := &mockProducer{}
	svc := NewPostService(postRepo, &mockESRepo{}, fixedUser(1, model.RoleUser, false), &mockClueGen{}, producer)

	if err := svc.DeletePost(context.Background(), 1, 10); err != nil {
		t.Fatalf("DeletePost 失败: %v", err)
	}
	if len(producer.events) != 1 || producer.events[0].Type != kafka.EventPostDeleted {
		t.Errorf("期望一条 post_deleted 事件, 实际 %v", producer.events)
	}
}

// 编辑时线索生成失败，库里的旧线索必须原样保留
func TestEditPost_ClueFailureKeepsStoredClues(t *testing.T) {
	setupTestConfig()

	oldClues := "既有线索"
	cluesWritten := false
	postRepo := &mockPostRepo{
		getPostFn: func(_ context.Context, id uint64) (*model.Post, error) {
			return &model.Post{ID: id, AuthorID: 1, Title: "t", Body: "旧正文", SearchClues: &oldClues, Status: model.PostStatusPending}, nil
		},
		updateCluesFn: func(_ context.Context, _ uint64, _ string) error {
			cluesWritten = true
			return nil
		},
	}
	clueGen := &mockClueGen{
		generateFn: func(ctx context.Context, _ string) (string, error) {
			return "", context.DeadlineExceeded
		},
	}
	svc := NewPostService(postRepo, &mockESRepo{}, fixedUser(1, model.RoleUser, false), clueGen, &mockProducer{})

	degraded, err := svc.EditPost(context.Background(), 1, 10, validDraft())
	if err != nil {
		t.Fatalf("线索失败不应阻塞编辑: %v", err)
	}
	if !degraded {
		t.Error("期望降级标记为 true")
	}
	if cluesWritten {
		t.Error("生成失败时不应触碰 search_clues 列")
	}
}

// 正文变了且线索生成成功，新线索通过单独的列更新落库
func TestEditPost_ClueSuccessUpdatesClues(t *testing.T) {
	setupTestConfig()

	var written string
	postRepo := &mockPostRepo{
		getPostFn: func(_ context.Context, id uint64) (*model.Post, error) {
			return &model.Post{ID: id, AuthorID: 1, Title: "t", Body: "旧正文", Status: model.PostStatusPending}, nil
		},
		updateCluesFn: func(_ context.Context, _ uint64, clues string) error {
			written = clues
			return nil
		},
	}
	svc := NewPostService(postRepo, &mockESRepo{}, fixedUser(1, model.RoleUser, false), &mockClueGen{}, &mockProducer{})

	degraded, err := svc.EditPost(context.Background(), 1, 10, validDraft())
	if err != nil {
		t.Fatalf("EditPost 失败: %v", err)
	}
	if degraded {
		t.Error("线索生成成功时不应降级")
	}
	if written != "默认线索" {
		t.Errorf("落库线索 = %q, 期望 %q", written, "默认线索")
	}
}

// 审核事件在 CAS 成功后必须发出，不依赖事后的回读
func TestModerate_EventNotDependentOnReread(t *testing.T) {
	setupTestConfig()

	reads := 0
	postRepo := &mockPostRepo{
		getPostFn: func(_ context.Context, id uint64) (*model.Post, error) {
			reads++
			if reads > 1 {
				return nil, errors.New("数据库抖动")
			}
			return &model.Post{ID: id, AuthorID: 3, Title: "t", Status: model.PostStatusPending}, nil
		},
	}
	producer := &mockProducer{}
	svc := NewPostService(postRepo, &mockESRepo{}, fixedUser(9, model.RoleAdmin, false), &mockClueGen{}, producer)

	if err := svc.ApprovePost(context.Background(), 9, 10); err != nil {
		t.Fatalf("ApprovePost 失败: %v", err)
	}
	if len(producer.events) != 1 {
		t.Fatalf("期望一条审核事件, 实际 %d 条", len(producer.events))
	}
	ev := producer.events[0]
	if ev.Type != kafka.EventPostApproved || ev.Status != model.PostStatusPublished || ev.AuthorID != 3 {
		t.Errorf("事件内容不符: %+v", ev)
	}
}
