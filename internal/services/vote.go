package services

import (
	"errors"

	"anonboard/internal/db"
	"anonboard/internal/models"

	"gorm.io/gorm"
)

// ApplyVote records a like or dislike by voter on the given post and
// returns the post's counters after the change. value must be
// models.VoteLike or models.VoteDislike.
//
// Per (post, voter) pair the rules are:
//   - no prior vote: the vote is recorded and the matching counter bumped
//   - same vote again: rejected with *AlreadyVotedError, nothing changes
//   - opposite vote: the record flips and both counters adjust
//
// There is no way back to neutral once a vote exists. The record and the
// counters change in one transaction so they can never disagree.
func ApplyVote(postID uint, voter string, value int) (likes, dislikes int, err error) {
	for attempt := 0; ; attempt++ {
		likes, dislikes, err = applyVote(postID, voter, value)
		// Two concurrent first votes by one voter race on the unique
		// ledger index; rerun once so the loser sees the winner's row
		// and gets the ordinary outcome instead of a constraint error.
		if attempt == 0 && errors.Is(err, gorm.ErrDuplicatedKey) {
			continue
		}
		return likes, dislikes, err
	}
}

func applyVote(postID uint, voter string, value int) (likes, dislikes int, err error) {
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		likesDelta, dislikesDelta := 0, 0

		var existing models.Vote
		err := tx.Where("post_id = ? AND anon_name = ?", postID, voter).First(&existing).Error
		switch {
		case err == nil:
			if existing.Value == value {
				return &AlreadyVotedError{Value: value}
			}
			// Override: flip the record, move one count across. The
			// flip is conditional on the value we read so that two
			// concurrent overrides cannot both count — under READ
			// COMMITTED the loser re-evaluates the WHERE after the
			// winner commits, matches nothing, and is rejected.
			res := tx.Model(&models.Vote{}).
				Where("id = ? AND value = ?", existing.ID, existing.Value).
				Update("value", value)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return &AlreadyVotedError{Value: value}
			}
			if value == models.VoteLike {
				likesDelta, dislikesDelta = 1, -1
			} else {
				likesDelta, dislikesDelta = -1, 1
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			vote := models.Vote{PostID: postID, AnonName: voter, Value: value}
			if err := tx.Create(&vote).Error; err != nil {
				return err
			}
			if value == models.VoteLike {
				likesDelta = 1
			} else {
				dislikesDelta = 1
			}
		default:
			return err
		}

		if err := tx.Model(&models.Post{}).Where("id = ?", postID).Updates(map[string]interface{}{
			"likes":    gorm.Expr("likes + ?", likesDelta),
			"dislikes": gorm.Expr("dislikes + ?", dislikesDelta),
		}).Error; err != nil {
			return err
		}

		// Re-read inside the transaction so the returned counters match
		// what was committed
		if err := tx.First(&post, postID).Error; err != nil {
			return err
		}
		likes, dislikes = post.Likes, post.Dislikes
		return nil
	})
	return likes, dislikes, err
}
