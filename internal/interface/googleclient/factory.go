package googleclient

import (
	"context"

	"chatspace-exporter/internal/domain/repository"
	"chatspace-exporter/internal/interface/chat"
	"chatspace-exporter/internal/interface/sheets"
	"chatspace-exporter/internal/usecase"
	"chatspace-exporter/pkg/logger"

	"golang.org/x/oauth2"
	"google.golang.org/api/option"
)

// Factory builds Chat and Sheets clients for a token source
type Factory struct {
	chatPageSize int
	logger       logger.Logger
	opts         []option.ClientOption
}

var _ usecase.ClientFactory = (*Factory)(nil)

// NewFactory creates a client factory; opts are applied to every client
func NewFactory(chatPageSize int, logger logger.Logger, opts ...option.ClientOption) *Factory {
	return &Factory{
		chatPageSize: chatPageSize,
		logger:       logger,
		opts:         opts,
	}
}

// NewSpaceRepository returns a Chat API backed space repository
func (f *Factory) NewSpaceRepository(ctx context.Context, tokenSource oauth2.TokenSource) (repository.SpaceRepository, error) {
	svc, err := chat.NewChatService(ctx, tokenSource, f.chatPageSize, f.logger.With("client", "chat"), f.opts...)
	if err != nil {
		return nil, err
	}
	return svc, nil
}

// NewWorksheetRepository returns a Sheets API backed worksheet repository
func (f *Factory) NewWorksheetRepository(ctx context.Context, tokenSource oauth2.TokenSource) (repository.WorksheetRepository, error) {
	svc, err := sheets.NewSheetsService(ctx, tokenSource, f.logger.With("client", "sheets"), f.opts...)
	if err != nil {
		return nil, err
	}
	return svc, nil
}
