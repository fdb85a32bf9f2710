package service

import (
	"hireboard/internal/domain"
	"hireboard/internal/repository"
)

// Actor is the authenticated caller of a service operation.
type Actor struct {
	ID   uint
	Role string
}

func (a Actor) IsAdmin() bool { return a.Role == domain.RoleAdmin }

// Paged is one page of a listing together with its totals.
type Paged[T any] struct {
	Data       []T   `json:"data"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

func newPaged[T any](list []T, total int64, p repository.Page) Paged[T] {
	if list == nil {
		list = []T{}
	}
	return Paged[T]{Data: list, Total: total, Page: p.Page, Limit: p.Limit, TotalPages: p.TotalPages(total)}
}
