// Package review manages self-authored path reviews, their peer likes and
// the like-count ranking list.
package review

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/zhihang-app/zhihang/internal/user"
)

// RankEntry is one row of the ranking list.
type RankEntry struct {
	UserID      string `json:"user_id"`
	UserName    string `json:"user_name"`
	LikeCount   int    `json:"like_count"`
	CurrentRank int    `json:"current_rank"`
}

// Service provides path-review bookkeeping over the user repository.
type Service struct {
	users user.Repository
	log   *zap.Logger
}

// NewService creates a review service.
func NewService(users user.Repository, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{users: users, log: log}
}

// Record stores the review text on the user's record. A nil public flag
// leaves the current visibility unchanged.
func (s *Service) Record(ctx context.Context, userID, content string, public *bool) error {
	rec, err := s.users.Get(ctx, userID)
	if err != nil {
		return err
	}
	rec.PathReview.Content = content
	if public != nil {
		rec.PathReview.IsPublic = *public
	}
	if err := s.users.Put(ctx, userID, rec); err != nil {
		return fmt.Errorf("persist review: %w", err)
	}
	return nil
}

// AddLike increments the like counter of the target user's review.
func (s *Service) AddLike(ctx context.Context, targetUserID string) (int, error) {
	rec, err := s.users.Get(ctx, targetUserID)
	if err != nil {
		return 0, err
	}
	rec.PathReview.LikeCount++
	if err := s.users.Put(ctx, targetUserID, rec); err != nil {
		return 0, fmt.Errorf("persist like: %w", err)
	}
	return rec.PathReview.LikeCount, nil
}

// RankList orders users with a public review by like count (ties broken
// by user id for a stable list), writes each listed user's current rank
// back onto their record and returns the list.
func (s *Service) RankList(ctx context.Context) ([]RankEntry, error) {
	all, err := s.users.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}

	entries := make([]RankEntry, 0, len(all))
	for id, rec := range all {
		if !rec.PathReview.IsPublic {
			continue
		}
		entries = append(entries, RankEntry{
			UserID:    id,
			UserName:  rec.Profile.Name,
			LikeCount: rec.PathReview.LikeCount,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].LikeCount != entries[j].LikeCount {
			return entries[i].LikeCount > entries[j].LikeCount
		}
		return entries[i].UserID < entries[j].UserID
	})

	for i := range entries {
		entries[i].CurrentRank = i + 1
		rec := all[entries[i].UserID]
		if rec.PathReview.CurrentRank == entries[i].CurrentRank {
			continue
		}
		rec.PathReview.CurrentRank = entries[i].CurrentRank
		if err := s.users.Put(ctx, entries[i].UserID, rec); err != nil {
			return nil, fmt.Errorf("persist rank for %s: %w", entries[i].UserID, err)
		}
	}

	s.log.Info("rank list generated", zap.Int("users", len(entries)))
	return entries, nil
}
