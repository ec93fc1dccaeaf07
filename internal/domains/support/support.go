// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package support implements support tickets and their reply threads.

A ticket is open until someone other than its owner replies, which marks it
answered. An owner reply reopens it. Either side may close it with a final
reply; a closed ticket takes no further replies.
*/
package support

import (
	"context"
	"strings"
	"time"

	"github.com/taibuivan/bizportal/internal/access/roles"
	"github.com/taibuivan/bizportal/internal/activity"
	"github.com/taibuivan/bizportal/internal/platform/apperr"
	"github.com/taibuivan/bizportal/internal/platform/validate"
	"github.com/taibuivan/bizportal/internal/portal"
	"github.com/taibuivan/bizportal/pkg/uuid"
)

// # Domain Entities

// Status is the state of a ticket.
type Status string

const (
	StatusOpen     Status = "open"
	StatusAnswered Status = "answered"
	StatusClosed   Status = "closed"
)

// Statuses lists every status, for filter validation.
var Statuses = []string{string(StatusOpen), string(StatusAnswered), string(StatusClosed)}

// Ticket is a support request raised by a portal user.
type Ticket struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	EcosystemID string    `json:"ecosystem_id,omitempty"`
	Subject     string    `json:"subject"`
	Body        string    `json:"body"`
	Status      Status    `json:"status"`
	Replies     []*Reply  `json:"replies,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Reply is one message in a ticket thread.
type Reply struct {
	ID        string    `json:"id"`
	TicketID  string    `json:"ticket_id"`
	AuthorID  string    `json:"author_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateInput is the payload of POST /support/tickets.
type CreateInput struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// ReplyInput is the payload of POST /support/tickets/{id}/replies.
type ReplyInput struct {
	Body  string `json:"body"`
	Close bool   `json:"close"`
}

// # Storage Contract

// Store persists tickets.
type Store interface {
	List(ctx context.Context, scope portal.DataScope, statuses []string, limit, offset int) ([]*Ticket, int, error)

	// Get returns a visible ticket with its replies, oldest first.
	Get(ctx context.Context, scope portal.DataScope, id string) (*Ticket, error)
	Create(ctx context.Context, ticket *Ticket) error

	// AddReply stores the reply and moves the ticket to status, provided the
	// ticket is visible and currently in one of from. NOT_FOUND otherwise.
	AddReply(ctx context.Context, scope portal.DataScope, reply *Reply, from []Status, status Status) (*Ticket, error)
}

// # Service

// Service implements support use cases.
type Service struct {
	store Store
	feed  *activity.Feed
}

// NewService creates a support Service. feed may be nil.
func NewService(store Store, feed *activity.Feed) *Service {
	return &Service{store: store, feed: feed}
}

// List returns one page of visible tickets.
func (service *Service) List(ctx context.Context, scope portal.DataScope, statuses []string, limit, offset int) ([]*Ticket, int, error) {
	v := &validate.Validator{}
	for _, status := range statuses {
		v.OneOf("status", status, Statuses...)
	}
	if err := v.Err(); err != nil {
		return nil, 0, err
	}
	return service.store.List(ctx, scope, statuses, limit, offset)
}

// Get returns a visible ticket and its thread.
func (service *Service) Get(ctx context.Context, scope portal.DataScope, id string) (*Ticket, error) {
	return service.store.Get(ctx, scope, id)
}

// Create opens a ticket owned by the caller.
func (service *Service) Create(ctx context.Context, scope portal.DataScope, input CreateInput) (*Ticket, error) {
	input.Subject = strings.TrimSpace(input.Subject)
	input.Body = strings.TrimSpace(input.Body)

	v := &validate.Validator{}
	v.Required("subject", input.Subject).MaxLen("subject", input.Subject, 200)
	v.Required("body", input.Body).MaxLen("body", input.Body, 5000)
	if err := v.Err(); err != nil {
		return nil, err
	}

	ticket := &Ticket{
		ID:          uuid.New(),
		OwnerID:     scope.UserID,
		EcosystemID: scope.EcosystemID,
		Subject:     input.Subject,
		Body:        input.Body,
		Status:      StatusOpen,
	}
	if err := service.store.Create(ctx, ticket); err != nil {
		return nil, err
	}

	service.feed.Record(ctx, scope, activity.Entry{
		Domain: roles.DomainSupport, Action: "ticket_opened", RecordID: ticket.ID, Summary: ticket.Subject,
	})
	return ticket, nil
}

// Reply appends to a visible ticket's thread and moves its status.
func (service *Service) Reply(ctx context.Context, scope portal.DataScope, id string, input ReplyInput) (*Ticket, error) {
	input.Body = strings.TrimSpace(input.Body)

	v := &validate.Validator{}
	v.Required("body", input.Body).MaxLen("body", input.Body, 5000)
	if err := v.Err(); err != nil {
		return nil, err
	}

	ticket, err := service.store.Get(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	next := StatusAnswered
	switch {
	case input.Close:
		next = StatusClosed
	case ticket.OwnerID == scope.UserID:
		next = StatusOpen
	}

	reply := &Reply{ID: uuid.New(), TicketID: ticket.ID, AuthorID: scope.UserID, Body: input.Body}
	updated, err := service.store.AddReply(ctx, scope, reply, []Status{StatusOpen, StatusAnswered}, next)
	if err != nil {
		if !apperr.HasCode(err, apperr.CodeNotFound) {
			return nil, err
		}
		current, getErr := service.store.Get(ctx, scope, id)
		if getErr != nil {
			return nil, getErr
		}
		return nil, apperr.Conflict("Ticket is closed").WithDetails(map[string]any{"status": current.Status})
	}

	service.feed.Record(ctx, scope, activity.Entry{
		Domain: roles.DomainSupport, Action: "ticket_replied", RecordID: updated.ID, Summary: string(updated.Status),
	})
	return updated, nil
}
