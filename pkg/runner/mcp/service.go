// Package mcp provides the Model Context Protocol server integration for mindease.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tableflip.dev/mindease/pkg/analytics"
	"tableflip.dev/mindease/pkg/chat"
	"tableflip.dev/mindease/pkg/entry"
	"tableflip.dev/mindease/pkg/journal"
	"tableflip.dev/mindease/pkg/mood"
)

// Service coordinates journal operations that are shared by the MCP server.
type Service struct {
	Journal   *journal.Store
	Companion *chat.Companion
	Now       func() time.Time
}

// EntryDTO is a transport-friendly projection of an entry.
type EntryDTO struct {
	ID          int64   `json:"id"`
	Text        string  `json:"text"`
	Mood        string  `json:"mood"`
	MoodName    string  `json:"moodName"`
	Score       float64 `json:"score,omitempty"`
	Scored      bool    `json:"scored"`
	Created     string  `json:"created"`
	CreatedISO  string  `json:"createdISO"`
	CreatedUnix int64   `json:"createdUnix"`
}

// StatsDTO is the analytics summary with its caption.
type StatsDTO struct {
	Window string `json:"window"`
	analytics.Summary
	Insight string `json:"insight"`
}

// NewService builds a service over j.
func NewService(j *journal.Store) *Service {
	return &Service{Journal: j, Companion: chat.New(), Now: time.Now}
}

func (s *Service) ready() error {
	if s == nil || s.Journal == nil {
		return errors.New("journal is not configured")
	}
	return nil
}

// SaveEntry records a new entry.
func (s *Service) SaveEntry(_ context.Context, text, moodName string) (EntryDTO, error) {
	if err := s.ready(); err != nil {
		return EntryDTO{}, err
	}
	m, err := mood.Parse(moodName)
	if err != nil {
		return EntryDTO{}, err
	}
	id, err := s.Journal.Save(text, m)
	if err != nil {
		return EntryDTO{}, err
	}
	e, err := s.Journal.Get(id)
	if err != nil {
		return EntryDTO{}, err
	}
	return toDTO(e), nil
}

// ListEntries returns entries matching query and moodName, newest first,
// truncated to limit when positive.
func (s *Service) ListEntries(_ context.Context, query, moodName string, limit int) ([]EntryDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	filter, err := mood.Parse(moodName)
	if err != nil {
		return nil, err
	}
	all, err := s.Journal.List(query, filter)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	out := make([]EntryDTO, 0, len(all))
	for _, e := range all {
		out = append(out, toDTO(e))
	}
	return out, nil
}

// EntryByID fetches one entry.
func (s *Service) EntryByID(_ context.Context, id int64) (EntryDTO, error) {
	if err := s.ready(); err != nil {
		return EntryDTO{}, err
	}
	e, err := s.Journal.Get(id)
	if err != nil {
		return EntryDTO{}, err
	}
	return toDTO(e), nil
}

// UpdateEntry replaces text and/or mood. Blank values keep what is stored.
func (s *Service) UpdateEntry(_ context.Context, id int64, text, moodName string) (EntryDTO, error) {
	if err := s.ready(); err != nil {
		return EntryDTO{}, err
	}
	current, err := s.Journal.BeginEdit(id)
	if err != nil {
		return EntryDTO{}, err
	}
	if strings.TrimSpace(text) == "" {
		text = current.Text
	}
	m := current.Mood
	if strings.TrimSpace(moodName) != "" {
		if m, err = mood.Parse(moodName); err != nil {
			return EntryDTO{}, err
		}
	}
	e, err := s.Journal.Update(id, text, m)
	if err != nil {
		return EntryDTO{}, err
	}
	return toDTO(e), nil
}

// DeleteEntry removes an entry. Unknown ids succeed.
func (s *Service) DeleteEntry(_ context.Context, id int64) error {
	if err := s.ready(); err != nil {
		return err
	}
	return s.Journal.Delete(id)
}

// MoodStats summarizes the journal, optionally over a trailing window.
func (s *Service) MoodStats(_ context.Context, window time.Duration, label string) (StatsDTO, error) {
	if err := s.ready(); err != nil {
		return StatsDTO{}, err
	}
	v := analytics.View{Source: s.Journal, Window: window, Now: s.Now}
	sum, err := v.Summary()
	if err != nil {
		return StatsDTO{}, err
	}
	if label == "" {
		label = "all"
	}
	return StatsDTO{Window: label, Summary: sum, Insight: sum.Insight()}, nil
}

// Chat answers message as Clara. Requests share no transcript, so concurrent
// clients never see each other's messages.
func (s *Service) Chat(_ context.Context, message string) (chat.Message, error) {
	c := s.Companion
	if c == nil {
		c = chat.New()
	}
	reply, ok := c.Reply(message)
	if !ok {
		return chat.Message{}, fmt.Errorf("message is required")
	}
	return chat.Message{From: chat.Name, Text: reply}, nil
}

func toDTO(e entry.Entry) EntryDTO {
	dto := EntryDTO{
		ID:          e.ID,
		Text:        e.Text,
		Mood:        e.Mood.String(),
		MoodName:    "any",
		Created:     e.Created,
		CreatedUnix: e.CreatedAt().Unix(),
		CreatedISO:  e.CreatedAt().Format(time.RFC3339),
	}
	if g, ok := e.Mood.Glyph(); ok {
		dto.MoodName = g.Noun
	}
	if score, ok := e.Mood.Score(); ok {
		dto.Score, dto.Scored = score, true
	}
	return dto
}
