// Package store is the persistence layer over the three blog tables.
// Writes that would violate a uniqueness constraint fail with a typed
// error instead of partially committing.
package store

import (
	"errors"

	"gorm.io/gorm"

	"blog/models"
)

var (
	// ErrNotFound is returned when a looked-up record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrEmailTaken is returned when a registration reuses an email.
	ErrEmailTaken = errors.New("email already taken")
	// ErrTitleTaken is returned when a post reuses an existing title.
	ErrTitleTaken = errors.New("post title already taken")
)

// Store wraps a gorm connection with the blog's data operations.
type Store struct {
	db *gorm.DB
}

// New creates a Store over an initialized database.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// CreateUser persists a new user. The email must be unique.
func (s *Store) CreateUser(user *models.User) error {
	if err := s.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}

// UserByEmail looks a user up by email address.
func (s *Store) UserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UserByID looks a user up by primary key.
func (s *Store) UserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// CreatePost persists a new post. The title must be unique.
func (s *Store) CreatePost(post *models.Post) error {
	if err := s.db.Create(post).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrTitleTaken
		}
		return err
	}
	return nil
}

// PostByID loads a post together with its author and comments.
func (s *Store) PostByID(id uint) (*models.Post, error) {
	var post models.Post
	err := s.db.Preload("User").Preload("Comments.User").First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

// ListPosts returns all posts, newest first, with their authors.
func (s *Store) ListPosts() ([]models.Post, error) {
	var posts []models.Post
	if err := s.db.Preload("User").Order("id DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// UpdatePost mutates the editable fields of an existing post. The
// creation date and author never change.
func (s *Store) UpdatePost(post *models.Post) error {
	updates := map[string]interface{}{
		"title":    post.Title,
		"subtitle": post.Subtitle,
		"body":     post.Body,
		"img_url":  post.ImgURL,
	}
	var existing models.Post
	if err := s.db.First(&existing, post.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	err := s.db.Model(&existing).Updates(updates).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrTitleTaken
		}
		return err
	}
	return nil
}

// DeletePost removes a post and all of its comments in one transaction,
// so no comment can outlive its parent post.
func (s *Store) DeletePost(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Post{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// CreateComment attaches a comment to a post. Both the author and the
// parent post must exist.
func (s *Store) CreateComment(comment *models.Comment) error {
	if _, err := s.PostByID(comment.PostID); err != nil {
		return err
	}
	if _, err := s.UserByID(comment.UserID); err != nil {
		return err
	}
	return s.db.Create(comment).Error
}

// CommentsByPost returns the comments of one post with their authors.
func (s *Store) CommentsByPost(postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.db.Preload("User").Where("post_id = ?", postID).Order("id ASC").Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}
