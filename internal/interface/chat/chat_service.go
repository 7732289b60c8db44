package chat

import (
	"context"
	"fmt"

	"chatspace-exporter/internal/domain/entity"
	"chatspace-exporter/internal/domain/repository"
	"chatspace-exporter/pkg/logger"

	"golang.org/x/oauth2"
	"google.golang.org/api/chat/v1"
	"google.golang.org/api/option"
)

// ChatService handles interaction with the Google Chat API
type ChatService struct {
	chatService *chat.Service
	pageSize    int64
	logger      logger.Logger
}

var _ repository.SpaceRepository = (*ChatService)(nil)

// NewChatService creates a new Chat service authenticated with tokenSource
func NewChatService(ctx context.Context, tokenSource oauth2.TokenSource, pageSize int, logger logger.Logger, opts ...option.ClientOption) (*ChatService, error) {
	opts = append([]option.ClientOption{option.WithTokenSource(tokenSource)}, opts...)

	service, err := chat.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat service: %w", err)
	}

	return &ChatService{
		chatService: service,
		pageSize:    int64(pageSize),
		logger:      logger,
	}, nil
}

// ListSpaces pages through every space visible to the caller.
// A failing page aborts the listing.
func (s *ChatService) ListSpaces(ctx context.Context) ([]*entity.Space, error) {
	var spaces []*entity.Space
	pageToken := ""
	pages := 0

	for {
		call := s.chatService.Spaces.List().PageSize(s.pageSize).Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := call.Do()
		if err != nil {
			s.logger.Error("Failed to list spaces", "page", pages+1, "error", err)
			return nil, fmt.Errorf("failed to list spaces (page %d): %w", pages+1, err)
		}
		pages++

		for _, sp := range resp.Spaces {
			spaces = append(spaces, convertToSpace(sp))
		}

		s.logger.Debug("Fetched spaces page", "page", pages, "count", len(resp.Spaces))

		pageToken = resp.NextPageToken
		if pageToken == "" {
			break
		}
	}

	s.logger.Info("Space listing completed", "pages", pages, "spaces", len(spaces))

	return spaces, nil
}

// convertToSpace converts a Chat API space to our domain entity
func convertToSpace(sp *chat.Space) *entity.Space {
	space := &entity.Space{
		Name:        sp.Name,
		DisplayName: sp.DisplayName,
		Type:        sp.Type,
		SpaceType:   sp.SpaceType,
		CreateTime:  sp.CreateTime,
	}

	if sp.MembershipCount != nil {
		space.MemberCount = sp.MembershipCount.JoinedDirectHumanUserCount
	}

	return space
}
