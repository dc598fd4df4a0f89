package services

import (
	"errors"
	"time"

	"anonboard/internal/db"
	"anonboard/internal/models"
	"anonboard/internal/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const statsCacheKey = "stats"

// CreatePost stores a new post under a fresh token. The display name is
// kept exactly as supplied; the body passes through the UGC sanitizer.
func CreatePost(anonName, content string) (*models.Post, error) {
	post := models.Post{
		UUID:     uuid.NewString(),
		AnonName: anonName,
		Content:  utils.SanitizeContent(content),
	}
	if err := db.DB.Create(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// ListPosts returns all posts in insertion order with comment counts
// filled in.
func ListPosts() ([]models.Post, error) {
	var posts []models.Post
	if err := db.DB.Order("id ASC").Find(&posts).Error; err != nil {
		return nil, err
	}
	if err := fillCommentCounts(posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// fillCommentCounts 批量填充帖子的评论数量
func fillCommentCounts(posts []models.Post) error {
	if len(posts) == 0 {
		return nil
	}

	uuids := make([]string, len(posts))
	for i, p := range posts {
		uuids[i] = p.UUID
	}

	type countResult struct {
		PostUUID string
		Count    int
	}
	var results []countResult
	err := db.DB.Model(&models.Comment{}).
		Select("post_uuid, COUNT(*) as count").
		Where("post_uuid IN ?", uuids).
		Group("post_uuid").
		Scan(&results).Error
	if err != nil {
		return err
	}

	countMap := make(map[string]int, len(results))
	for _, r := range results {
		countMap[r.PostUUID] = r.Count
	}
	for i := range posts {
		posts[i].CommentCount = countMap[posts[i].UUID]
	}
	return nil
}

// CreateComment attaches a comment to the post with the given token.
// Returns ErrNotFound if no live post carries the token.
func CreateComment(postUUID, anonName, content string) (*models.Comment, error) {
	var comment models.Comment
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.Where("uuid = ?", postUUID).First(&post).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		comment = models.Comment{
			PostUUID: postUUID,
			AnonName: anonName,
			Content:  utils.SanitizeContent(content),
		}
		return tx.Create(&comment).Error
	})
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func ListComments(postUUID string) ([]models.Comment, error) {
	var comments []models.Comment
	err := db.DB.Where("post_uuid = ?", postUUID).Order("id ASC").Find(&comments).Error
	return comments, err
}

// DeletePost removes a post together with its comments and vote records.
// The cascade is deliberate: a deleted post must leave no dangling
// comments or ledger rows behind.
func DeletePost(id uint) error {
	return db.DB.Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := tx.Where("post_uuid = ?", post.UUID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		return tx.Delete(&post).Error
	})
}

func DeleteComment(id uint) error {
	return db.DB.Transaction(func(tx *gorm.DB) error {
		var comment models.Comment
		if err := tx.First(&comment, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		return tx.Delete(&comment).Error
	})
}

// RecordVisitor appends one visitor ping.
func RecordVisitor() error {
	return db.DB.Create(&models.Visitor{}).Error
}

// BoardStats are the point-in-time aggregate counts for the stats
// endpoint.
type BoardStats struct {
	TotalVisitors int64 `json:"total_visitors"`
	TotalPosts    int64 `json:"total_posts"`
}

// Stats returns visitor and post totals. Results are cached briefly; the
// endpoint only promises "some valid past state".
func Stats() (BoardStats, error) {
	if cached := utils.GetCache().Get(statsCacheKey); cached != nil {
		if stats, ok := cached.(BoardStats); ok {
			return stats, nil
		}
	}

	var stats BoardStats
	if err := db.DB.Model(&models.Visitor{}).Count(&stats.TotalVisitors).Error; err != nil {
		return BoardStats{}, err
	}
	if err := db.DB.Model(&models.Post{}).Count(&stats.TotalPosts).Error; err != nil {
		return BoardStats{}, err
	}

	utils.GetCache().Set(statsCacheKey, stats, 10*time.Second)
	return stats, nil
}
