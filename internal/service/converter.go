package service

import (
	"Patchouli/internal/api/dto"
	"Patchouli/internal/model"
	"Patchouli/internal/pkg/es"
	"time"

	"github.com/jinzhu/copier"
)

func toPostDTOFromModel(post *model.Post) *dto.PostDTO {
	tags := make([]string, 0, len(post.Tags))
	for _, tag := range post.Tags {
		tags = append(tags, tag.Name)
	}

	var attachments []*dto.AttachmentDTO
	_ = copier.Copy(&attachments, &post.Attachments)

	clues := ""
	if post.SearchClues != nil {
		clues = *post.SearchClues
	}

	return &dto.PostDTO{
		ID:          post.ID,
		Title:       post.Title,
		Body:        post.Body,
		Tags:        tags,
		SearchClues: clues,
		CreatedAt:   post.CreatedAt.Format(time.DateTime),
		UpdatedAt:   post.UpdatedAt.Format(time.DateTime),
		Attachments: attachments,
		AuthorID:    post.AuthorID,
		Nickname:    post.Author.Nickname,
		AvatarURL:   post.Author.AvatarURL,
	}
}

func toPostDTO(post *model.Post, tags []string, attachments []dto.AttachmentDTO) *dto.PostDTO {
	items := make([]*dto.AttachmentDTO, 0, len(attachments))
	for i := range attachments {
		items = append(items, &attachments[i])
	}

	clues := ""
	if post.SearchClues != nil {
		clues = *post.SearchClues
	}

	status := int8(post.Status)
	return &dto.PostDTO{
		ID:          post.ID,
		Title:       post.Title,
		Body:        post.Body,
		Tags:        tags,
		SearchClues: clues,
		Status:      &status,
		CreatedAt:   post.CreatedAt.Format(time.DateTime),
		UpdatedAt:   post.UpdatedAt.Format(time.DateTime),
		Attachments: items,
		AuthorID:    post.AuthorID,
		Nickname:    post.Author.Nickname,
		AvatarURL:   post.Author.AvatarURL,
	}
}

func toPostDTOFromES(post *es.PostES) *dto.PostDTO {
	return &dto.PostDTO{
		ID:          post.ID,
		Title:       post.Title,
		Body:        post.Body,
		Tags:        post.Tags,
		SearchClues: post.SearchClues,
		CreatedAt:   post.CreatedAt.Format(time.DateTime),
		UpdatedAt:   post.UpdatedAt.Format(time.DateTime),
		AuthorID:    post.AuthorID,
		Nickname:    post.AuthorNickname,
	}
}

// toFeedDTOFromES 多取一条判定 hasMore
func toFeedDTOFromES(posts []*es.PostES, pageSize int) *dto.PostFeedDTO {
	hasMore := false
	if len(posts) > pageSize {
		hasMore = true
		posts = posts[:pageSize]
	}

	items := make([]*dto.PostDTO, 0, len(posts))
	for _, post := range posts {
		items = append(items, toPostDTOFromES(post))
	}

	return &dto.PostFeedDTO{List: items, HasMore: hasMore}
}
