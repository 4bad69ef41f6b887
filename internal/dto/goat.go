package dto

import (
	"github.com/SscSPs/karangnongko_farm/internal/core/domain"
	"github.com/shopspring/decimal"
)

// GoatRequest is the body of add and update.
type GoatRequest struct {
	Barn   domain.Barn         `json:"barn" binding:"required,oneof=Timur Barat"`
	Weight *decimal.Decimal    `json:"weight" binding:"required"`
	Age    *int                `json:"age" binding:"required,gte=0"`
	Gender domain.Gender       `json:"gender" binding:"required,oneof=Jantan Betina"`
	Status domain.HealthStatus `json:"status" binding:"required,oneof=Hidup Sakit Mati"`
}

// ToFields converts a bound request. Callers must have validated it.
func (r GoatRequest) ToFields() domain.GoatFields {
	fields := domain.GoatFields{Barn: r.Barn, Gender: r.Gender, Status: r.Status}
	if r.Weight != nil {
		fields.Weight = *r.Weight
	}
	if r.Age != nil {
		fields.Age = *r.Age
	}
	return fields
}

// ListGoatsParams are the roster list query parameters.
type ListGoatsParams struct {
	Barn string `form:"barn" binding:"omitempty,oneof=all Timur Barat"`
	Page int    `form:"page" binding:"omitempty,min=1"`
}

// BarnOrAll returns the barn filter, defaulting to every barn.
func (p ListGoatsParams) BarnOrAll() string {
	if p.Barn == "" {
		return domain.BarnFilterAll
	}
	return p.Barn
}

// GoatResponse mirrors domain.Goat.
type GoatResponse struct {
	ID     string              `json:"id"`
	Barn   domain.Barn         `json:"barn"`
	Weight decimal.Decimal     `json:"weight"`
	Age    int                 `json:"age"`
	Gender domain.Gender       `json:"gender"`
	Status domain.HealthStatus `json:"status"`
}

// GoatMutationResponse carries the affected goat and its toast.
type GoatMutationResponse struct {
	Goat         *GoatResponse `json:"goat,omitempty"`
	Notification *Notification `json:"notification"`
}

// GoatPageResponse is one page of the filtered roster.
type GoatPageResponse struct {
	Barn       string         `json:"barn"`
	Items      []GoatResponse `json:"items"`
	Page       int            `json:"page"`
	PageSize   int            `json:"pageSize"`
	TotalItems int            `json:"totalItems"`
	TotalPages int            `json:"totalPages"`
}

func ToGoatResponse(g domain.Goat) GoatResponse {
	return GoatResponse{ID: g.ID, Barn: g.Barn, Weight: g.Weight, Age: g.Age, Gender: g.Gender, Status: g.Status}
}

func ToGoatPageResponse(barn string, page domain.Page[domain.Goat]) GoatPageResponse {
	items := make([]GoatResponse, len(page.Items))
	for i, g := range page.Items {
		items[i] = ToGoatResponse(g)
	}
	return GoatPageResponse{
		Barn:       barn,
		Items:      items,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalItems: page.TotalItems,
		TotalPages: page.TotalPages,
	}
}
