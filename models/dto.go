package models

import "time"

type RegisterRequest struct {
	User RegisterUser `json:"user"`
}

type RegisterUser struct {
	Username string `json:"username" validate:"required,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginRequest struct {
	User LoginUser `json:"user"`
}

type LoginUser struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UpdateUserRequest struct {
	User *UpdateUser `json:"user" validate:"required"`
}

// UpdateUser fields are optional; nil or empty keeps the stored value.
type UpdateUser struct {
	Username *string `json:"username" validate:"omitempty,max=50"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password"`
	Bio      *string `json:"bio"`
	Image    *string `json:"image"`
}

type CreateArticleRequest struct {
	Article CreateArticle `json:"article"`
}

type CreateArticle struct {
	Title       string   `json:"title" validate:"required,max=255"`
	Description string   `json:"description" validate:"required"`
	Body        string   `json:"body" validate:"required"`
	TagList     []string `json:"tagList" validate:"dive,required"`
}

type UpdateArticleRequest struct {
	Article *UpdateArticle `json:"article" validate:"required"`
}

type UpdateArticle struct {
	Title       *string `json:"title" validate:"omitempty,max=255"`
	Description *string `json:"description"`
	Body        *string `json:"body"`
}

type CreateCommentRequest struct {
	Comment CreateComment `json:"comment"`
}

type CreateComment struct {
	Body string `json:"body" validate:"required"`
}

type ArticleListParams struct {
	Tag       string `form:"tag"`
	Author    string `form:"author"`
	Favorited string `form:"favorited"`
	Limit     int    `form:"limit,default=20"`
	Offset    int    `form:"offset,default=0"`
	Feed      bool   `form:"-"`
}

type Profile struct {
	Username  string `json:"username"`
	Bio       string `json:"bio"`
	Image     string `json:"image"`
	Following bool   `json:"following"`
}

type ArticleView struct {
	Slug           string    `json:"slug"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Body           string    `json:"body"`
	TagList        []string  `json:"tagList"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
	Favorited      bool      `json:"favorited"`
	FavoritesCount int64     `json:"favoritesCount"`
	Author         Profile   `json:"author"`
}

type CommentView struct {
	ID        uint      `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Body      string    `json:"body"`
	Author    Profile   `json:"author"`
}

type UserView struct {
	Email    string `json:"email"`
	Token    string `json:"token"`
	Username string `json:"username"`
	Bio      string `json:"bio"`
	Image    string `json:"image"`
}

type ArticleEnvelope struct {
	Article ArticleView `json:"article"`
}

type ArticlesEnvelope struct {
	Articles      []ArticleView `json:"articles"`
	ArticlesCount int64         `json:"articlesCount"`
}

type CommentEnvelope struct {
	Comment CommentView `json:"comment"`
}

type CommentsEnvelope struct {
	Comments []CommentView `json:"comments"`
}

type ProfileEnvelope struct {
	Profile Profile `json:"profile"`
}

type TagsEnvelope struct {
	Tags []string `json:"tags"`
}

type UserEnvelope struct {
	User UserView `json:"user"`
}
