package database

import (
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rpupo63/blog-platform-backend/models"
)

type LikeRepo struct {
	db *gorm.DB
}

func NewLikeRepo(db *gorm.DB) *LikeRepo {
	return &LikeRepo{db}
}

// Toggle flips the like state of (blogID, userID) and reports whether the
// blog is liked afterwards. The whole flip runs in one transaction: a
// conditional delete first, then an insert guarded by the composite unique
// index, so two concurrent toggles by the same user cannot produce duplicate
// rows — the loser of the race sees a unique violation and treats the like as
// already present.
func (r *LikeRepo) Toggle(blogID, userID uint) (liked bool, err error) {
	err = r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("blog_id = ? AND user_id = ?", blogID, userID).Delete(&models.Like{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			liked = false
			return nil
		}

		like := models.Like{BlogID: blogID, UserID: userID}
		insert := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&like)
		if insert.Error != nil {
			// sqlite reports the conflict instead of honoring DO NOTHING on
			// some versions; a unique violation means the like already exists.
			if strings.Contains(insert.Error.Error(), "UNIQUE constraint") ||
				strings.Contains(insert.Error.Error(), "duplicate key") {
				liked = true
				return nil
			}
			return insert.Error
		}
		liked = true
		return nil
	})
	return liked, err
}

// CountForBlog returns the number of likes on a blog.
func (r *LikeRepo) CountForBlog(blogID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Like{}).Where("blog_id = ?", blogID).Count(&count).Error
	return count, err
}

// Exists reports whether the user has liked the blog.
func (r *LikeRepo) Exists(blogID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Like{}).
		Where("blog_id = ? AND user_id = ?", blogID, userID).
		Count(&count).Error
	return count > 0, err
}
