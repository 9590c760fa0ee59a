package models

import "time"

// Resource is an ONG record. Owner is fixed at creation.
type Resource struct {
	ID          string
	Name        string
	Description string
	CreatedYear int
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Owner       User
}

type ResourceInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedYear int    `json:"createdYear"`
}

// ResourcePatch carries only the submitted fields of an update.
type ResourcePatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	CreatedYear *int    `json:"createdYear"`
}

func (p ResourcePatch) Apply(r *Resource) {
	if p.Name != nil {
		r.Name = *p.Name
	}
	if p.Description != nil {
		r.Description = *p.Description
	}
	if p.CreatedYear != nil {
		r.CreatedYear = *p.CreatedYear
	}
}

type ResourceView struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedYear int       `json:"createdYear"`
	Created     time.Time `json:"created"`
	Updated     time.Time `json:"updated"`
	Creator     UserView  `json:"creator"`
}

func (r Resource) View() ResourceView {
	return ResourceView{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		CreatedYear: r.CreatedYear,
		Created:     r.CreatedAt,
		Updated:     r.UpdatedAt,
		Creator:     r.Owner.View(),
	}
}
