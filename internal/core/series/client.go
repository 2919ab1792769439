// Copyright (c) 2026 Serista. All rights reserved.
// Author: hello@serista.app

package series

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/serista/serista/internal/platform/constants"
	"github.com/serista/serista/internal/platform/transport"
	"github.com/serista/serista/internal/platform/validate"
)

// listKeys is the fixed priority order of wrapper keys a list response may
// hide its array under. Order matters: the first decodable key wins.
var listKeys = []string{constants.FieldData, constants.FieldSeries, constants.FieldResult}

// Client implements the typed series CRUD endpoints over the mediator.
//
// # Error Policy
//
// Mediator failures pass through untouched; the only errors added here are
// pre-flight validation failures. List responses are the one exception to
// strictness: an unrecognized shape degrades to an empty list so a backend
// contract drift cannot crash the view layer.
type Client struct {
	mediator *transport.Mediator
}

// NewClient constructs a series [Client] around the shared mediator.
func NewClient(mediator *transport.Mediator) *Client {
	return &Client{mediator: mediator}
}

// List fetches series matching filter.
//
// The backend may return a bare array or wrap it under data/series/result;
// every other shape yields an empty, non-nil slice.
func (c *Client) List(ctx context.Context, filter Filter) ([]Series, error) {
	resp, err := c.mediator.Send(ctx, transport.Request{
		Method: http.MethodGet,
		Path:   "/api/series",
		Query:  filter.Query(),
	})
	if err != nil {
		return nil, err
	}
	return unwrapList(resp.Raw), nil
}

// Create submits a new record (without an ID) and returns the stored copy.
func (c *Client) Create(ctx context.Context, s Series) (*Series, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	s.ID = ""
	return c.send(ctx, http.MethodPost, "/api/series", s)
}

// Get fetches one record by ID.
func (c *Client) Get(ctx context.Context, id string) (*Series, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	return c.send(ctx, http.MethodGet, itemPath(id), nil)
}

// Replace overwrites the full record via PUT.
func (c *Client) Replace(ctx context.Context, id string, s Series) (*Series, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return c.send(ctx, http.MethodPut, itemPath(id), s)
}

// Update applies a partial update via PATCH; nil patch fields are untouched.
func (c *Client) Update(ctx context.Context, id string, patch Patch) (*Series, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	return c.send(ctx, http.MethodPatch, itemPath(id), patch)
}

// Delete removes one record by ID.
func (c *Client) Delete(ctx context.Context, id string) error {
	if err := requireID(id); err != nil {
		return err
	}
	_, err := c.mediator.Send(ctx, transport.Request{
		Method: http.MethodDelete,
		Path:   itemPath(id),
	})
	return err
}

// send dispatches one call and decodes the response into a Series.
func (c *Client) send(ctx context.Context, method, path string, body any) (*Series, error) {
	resp, err := c.mediator.Send(ctx, transport.Request{
		Method: method,
		Path:   path,
		Body:   body,
	})
	if err != nil {
		return nil, err
	}
	stored := &Series{}
	if err := resp.Decode(stored); err != nil {
		return nil, err
	}
	return stored, nil
}

func itemPath(id string) string {
	return "/api/series/" + url.PathEscape(id)
}

func requireID(id string) error {
	if id == "" {
		return validate.RequiredError("id", "is required")
	}
	return nil
}

// unwrapList decodes a list response defensively.
//
// Accepted shapes, in order: a bare array, then an object carrying the
// array under one of [listKeys]. Anything else — including an empty object
// or elements that fail to decode — degrades to an empty slice.
func unwrapList(raw []byte) []Series {
	if len(raw) == 0 {
		return []Series{}
	}

	var direct []Series
	if err := json.Unmarshal(raw, &direct); err == nil {
		if direct == nil {
			return []Series{}
		}
		return direct
	}

	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return []Series{}
	}
	for _, key := range listKeys {
		inner, ok := wrapped[key]
		if !ok {
			continue
		}
		var list []Series
		if err := json.Unmarshal(inner, &list); err == nil && list != nil {
			return list
		}
	}
	return []Series{}
}
