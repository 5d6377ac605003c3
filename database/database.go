package database

import (
	"gorm.io/gorm"

	"github.com/rpupo63/blog-platform-backend/models"
)

type Database struct {
	userRepo     *UserRepo
	blogRepo     *BlogRepo
	categoryRepo *CategoryRepo
	tagRepo      *TagRepo
	commentRepo  *CommentRepo
	likeRepo     *LikeRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		userRepo:     NewUserRepo(db),
		blogRepo:     NewBlogRepo(db),
		categoryRepo: NewCategoryRepo(db),
		tagRepo:      NewTagRepo(db),
		commentRepo:  NewCommentRepo(db),
		likeRepo:     NewLikeRepo(db),
	}
}

// Migrate creates or updates the schema for every entity. The blog/tag join
// table is registered first so its model (with created_at) is used instead of
// gorm's implicit one.
func Migrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&models.Blog{}, "Tags", &models.BlogTag{}); err != nil {
		return err
	}
	if err := db.SetupJoinTable(&models.Tag{}, "Blogs", &models.BlogTag{}); err != nil {
		return err
	}
	return db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Tag{},
		&models.Blog{},
		&models.Comment{},
		&models.Like{},
	)
}

// Accessor methods for each repository

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

func (d Database) BlogRepo() *BlogRepo {
	return d.blogRepo
}

func (d Database) CategoryRepo() *CategoryRepo {
	return d.categoryRepo
}

func (d Database) TagRepo() *TagRepo {
	return d.tagRepo
}

func (d Database) CommentRepo() *CommentRepo {
	return d.commentRepo
}

func (d Database) LikeRepo() *LikeRepo {
	return d.likeRepo
}
