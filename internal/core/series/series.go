// Copyright (c) 2026 Serista. All rights reserved.
// Author: hello@serista.app

// Package series provides the typed client for watch-progress records.
//
// The backend owns the data; this package holds a transient, locally
// filtered copy for display. Beyond what the validation rules enforce
// before submission, no client-side uniqueness or referential invariants
// exist.
package series

import (
	"time"

	"github.com/serista/serista/internal/platform/validate"
)

// Status is the watch state of a series.
type Status string

const (
	StatusPlanned   Status = "planned"
	StatusWatching  Status = "watching"
	StatusCompleted Status = "completed"
)

// Statuses lists every valid status, in display order.
var Statuses = []Status{StatusPlanned, StatusWatching, StatusCompleted}

// Series is one tracked show.
type Series struct {
	ID              string    `json:"id,omitempty"`
	Title           string    `json:"title"`
	Rating          int       `json:"rating"`
	TotalSeasons    int       `json:"totalSeasons"`
	TotalEpisodes   int       `json:"totalEpisodes"`
	WatchedEpisodes int       `json:"watchedEpisodes"`
	Status          Status    `json:"status"`
	OwnerID         string    `json:"ownerId,omitempty"`
	CreatedAt       time.Time `json:"createdAt,omitzero"`
	UpdatedAt       time.Time `json:"updatedAt,omitzero"`
}

// Validate enforces the submission rules shared by create and replace.
//
// # Business Rules
//   - Title is required.
//   - Rating lies in [0, 10].
//   - A series has at least one season and one episode.
//   - Watched episodes can never be negative.
//   - Status is one of planned, watching, completed.
func (s *Series) Validate() error {
	v := &validate.Validator{}
	return v.
		Required("title", s.Title).
		Range("rating", s.Rating, 0, 10).
		Min("totalSeasons", s.TotalSeasons, 1).
		Min("totalEpisodes", s.TotalEpisodes, 1).
		Min("watchedEpisodes", s.WatchedEpisodes, 0).
		OneOf("status", string(s.Status),
			string(StatusPlanned), string(StatusWatching), string(StatusCompleted)).
		Err()
}

// Patch is a partial update; nil fields are left untouched by the backend.
// Build values with [pointer.To].
type Patch struct {
	Title           *string `json:"title,omitempty"`
	Rating          *int    `json:"rating,omitempty"`
	TotalSeasons    *int    `json:"totalSeasons,omitempty"`
	TotalEpisodes   *int    `json:"totalEpisodes,omitempty"`
	WatchedEpisodes *int    `json:"watchedEpisodes,omitempty"`
	Status          *Status `json:"status,omitempty"`
}

// Validate checks only the fields the patch actually carries.
func (p *Patch) Validate() error {
	v := &validate.Validator{}
	if p.Title != nil {
		v.Required("title", *p.Title)
	}
	if p.Rating != nil {
		v.Range("rating", *p.Rating, 0, 10)
	}
	if p.TotalSeasons != nil {
		v.Min("totalSeasons", *p.TotalSeasons, 1)
	}
	if p.TotalEpisodes != nil {
		v.Min("totalEpisodes", *p.TotalEpisodes, 1)
	}
	if p.WatchedEpisodes != nil {
		v.Min("watchedEpisodes", *p.WatchedEpisodes, 0)
	}
	if p.Status != nil {
		v.OneOf("status", string(*p.Status),
			string(StatusPlanned), string(StatusWatching), string(StatusCompleted))
	}
	return v.Err()
}
