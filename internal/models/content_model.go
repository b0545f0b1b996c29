package models

import (
	"database/sql"
	"time"
)

type Course struct {
	ID           int64     `db:"id" json:"id"`
	InstructorID int64     `db:"instructor_id" json:"instructorId"`
	Title        string    `db:"title" json:"title"`
	IsPublished  bool      `db:"is_published" json:"isPublished"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

type Lesson struct {
	ID          int64        `db:"id" json:"id"`
	CourseID    int64        `db:"course_id" json:"courseId"`
	Title       string       `db:"title" json:"title"`
	PublishedAt sql.NullTime `db:"published_at" json:"publishedAt"`
	CreatedAt   time.Time    `db:"created_at" json:"createdAt"`
}

type Announcement struct {
	ID          int64        `db:"id" json:"id"`
	AuthorID    int64        `db:"author_id" json:"authorId"`
	Title       string       `db:"title" json:"title"`
	PublishedAt sql.NullTime `db:"published_at" json:"publishedAt"`
	CreatedAt   time.Time    `db:"created_at" json:"createdAt"`
}

type Post struct {
	ID          int64        `db:"id" json:"id"`
	AuthorID    int64        `db:"author_id" json:"authorId"`
	Title       string       `db:"title" json:"title"`
	PublishedAt sql.NullTime `db:"published_at" json:"publishedAt"`
	CreatedAt   time.Time    `db:"created_at" json:"createdAt"`
}
