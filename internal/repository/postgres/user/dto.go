package user

import (
	"time"

	"github.com/uptrace/bun"
)

type Filter struct {
	Limit  *int
	Offset *int
	Page   *int
	Search *string
}

type SignInRequest struct {
	Login    string `json:"login" form:"login"`
	Password string `json:"password" form:"password"`
}

type RefreshTokenRequest struct {
	AccessToken  string `json:"access_token" form:"access_token"`
	RefreshToken string `json:"refresh_token" form:"refresh_token"`
}

type AuthClaims struct {
	ID   int
	Role string
}

type GetListResponse struct {
	ID       int     `json:"id"`
	Login    *string `json:"login"`
	FullName *string `json:"name"`
	Role     *string `json:"role"`
}

type GetDetailByIdResponse struct {
	ID       int     `json:"id"`
	Login    *string `json:"login"`
	FullName *string `json:"name"`
	Role     *string `json:"role"`
}

type CreateRequest struct {
	Login    *string `json:"login" form:"login"`
	FullName *string `json:"name" form:"name"`
	Password *string `json:"password" form:"password"`
	Role     *string `json:"role" form:"role"`
}

type CreateResponse struct {
	bun.BaseModel `bun:"table:users"`

	ID        int       `json:"id" bun:"-"`
	Login     *string   `json:"login" bun:"login"`
	FullName  *string   `json:"name" bun:"full_name"`
	Password  *string   `json:"-" bun:"password"`
	Role      *string   `json:"role" bun:"role"`
	CreatedAt time.Time `json:"-" bun:"created_at"`
	CreatedBy int       `json:"-" bun:"created_by"`
}

type UpdateRequest struct {
	ID       int     `json:"id" form:"id"`
	Login    *string `json:"login" form:"login"`
	FullName *string `json:"name" form:"name"`
	Password *string `json:"password" form:"password"`
	Role     *string `json:"role" form:"role"`
}
