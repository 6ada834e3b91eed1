package repository

import (
	"Patchouli/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type PostRepo interface {
	CreatePost(ctx context.Context, post *model.Post, tags []*model.PostTag, attachments []*model.PostAttachment) error
	GetPost(ctx context.Context, id uint64) (*model.Post, error)
	GetPostsByStatusCursor(ctx context.Context, status model.PostStatus, lastID uint64, limit int) ([]*model.Post, error)
	GetPostsByAuthor(ctx context.Context, authorID uint64, limit, offset int) ([]*model.Post, error)
	UpdatePostContent(ctx context.Context, post *model.Post, tags []*model.PostTag, attachments []*model.PostAttachment) error
	UpdatePostStatus(ctx context.Context, id uint64, expected, next model.PostStatus) (bool, error)
	UpdateSearchClues(ctx context.Context, id uint64, clues string) error
	DeletePost(ctx context.Context, id uint64) error
}

type PostRepoImpl struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepo {
	return &PostRepoImpl{
		db: db,
	}
}

func (s PostRepoImpl) CreatePost(ctx context.Context, post *model.Post, tags []*model.PostTag, attachments []*model.PostAttachment) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return err
		}
		for _, tag := range tags {
			tag.PostID = post.ID
		}
		if len(tags) > 0 {
			if err := tx.Create(tags).Error; err != nil {
				return err
			}
		}
		for i, att := range attachments {
			att.PostID = post.ID
			att.Position = i
		}
		if len(attachments) > 0 {
			if err := tx.Create(attachments).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (s PostRepoImpl) GetPost(ctx context.Context, id uint64) (*model.Post, error) {
	var post model.Post
	err := s.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags").
		Preload("Attachments", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// GetPostsByStatusCursor 按状态做游标分页，审核队列使用
func (s PostRepoImpl) GetPostsByStatusCursor(ctx context.Context, status model.PostStatus, lastID uint64, limit int) ([]*model.Post, error) {
	var posts []*model.Post
	query := s.db.WithContext(ctx).
		Preload("Author").Preload("Tags").Preload("Attachments").
		Where("status = ?", status)
	if lastID > 0 {
		query = query.Where("id < ?", lastID)
	}
	err := query.Order("id DESC").Limit(limit).Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (s PostRepoImpl) GetPostsByAuthor(ctx context.Context, authorID uint64, limit, offset int) ([]*model.Post, error) {
	var posts []*model.Post
	err := s.db.WithContext(ctx).
		Preload("Author").Preload("Tags").Preload("Attachments").
		Where("author_id = ?", authorID).
		Order("id DESC").Limit(limit).Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (s PostRepoImpl) UpdatePostContent(ctx context.Context, post *model.Post, tags []*model.PostTag, attachments []*model.PostAttachment) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.PostTag{}, "post_id = ?", post.ID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.PostAttachment{}, "post_id = ?", post.ID).Error; err != nil {
			return err
		}
		if err := tx.Model(post).Select("title", "body", "updated_at").Updates(post).Error; err != nil {
			return err
		}
		for _, tag := range tags {
			tag.PostID = post.ID
		}
		if len(tags) > 0 {
			if err := tx.Create(tags).Error; err != nil {
				return err
			}
		}
		for i, att := range attachments {
			att.PostID = post.ID
			att.Position = i
		}
		if len(attachments) > 0 {
			if err := tx.Create(attachments).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// UpdatePostStatus 对状态列做条件更新（CAS）。
// 返回 false 表示行不存在或状态已被并发修改，未产生任何写入。
func (s PostRepoImpl) UpdatePostStatus(ctx context.Context, id uint64, expected, next model.PostStatus) (bool, error) {
	result := s.db.WithContext(ctx).
		Model(&model.Post{}).
		Where("id = ? AND status = ?", id, expected).
		Update("status", next)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (s PostRepoImpl) UpdateSearchClues(ctx context.Context, id uint64, clues string) error {
	return s.db.WithContext(ctx).
		Model(&model.Post{}).
		Where("id = ?", id).
		Update("search_clues", clues).Error
}

// DeletePost 物理删除，不留墓碑
func (s PostRepoImpl) DeletePost(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.PostTag{}, "post_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.PostAttachment{}, "post_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Post{}, id).Error
	})
}
