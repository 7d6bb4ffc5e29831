package pagescmd

import (
	"context"
	"errors"

	"github.com/goliatone/go-docs/internal/commands"
	"github.com/goliatone/go-docs/internal/pages"
	"github.com/goliatone/go-docs/pkg/interfaces"
	command "github.com/goliatone/go-command"
	"github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-command/runner"
)

var (
	_ command.Commander[CreateFolderCommand] = (*commands.Handler[CreateFolderCommand])(nil)
	_ command.Commander[CreatePageCommand]   = (*commands.Handler[CreatePageCommand])(nil)
)

// HandlerSet groups the folder and page handlers.
type HandlerSet struct {
	CreateFolder *commands.Handler[CreateFolderCommand]
	DeleteFolder *commands.Handler[DeleteFolderCommand]
	CreatePage   *commands.Handler[CreatePageCommand]
	PublishPage  *commands.Handler[PublishPageCommand]
	DeletePage   *commands.Handler[DeletePageCommand]
}

// NewHandlerSet binds every authoring command to service.
func NewHandlerSet(service pages.Service, logger interfaces.Logger) (*HandlerSet, error) {
	if service == nil {
		return nil, errors.New("pages command registration: service is nil")
	}

	return &HandlerSet{
		CreateFolder: commands.NewHandler(func(ctx context.Context, msg CreateFolderCommand) error {
			folder, err := service.CreateFolder(ctx, pages.CreateFolderRequest{
				Name:        msg.Name,
				Slug:        msg.Slug,
				Description: msg.Description,
				SortOrder:   msg.SortOrder,
			})
			if err != nil {
				return err
			}
			if msg.Result != nil {
				msg.Result(folder)
			}
			return nil
		},
			commands.WithLogger[CreateFolderCommand](logger),
			commands.WithOperation[CreateFolderCommand]("folders.create"),
			commands.WithMessageFields(func(msg CreateFolderCommand) map[string]any {
				return map[string]any{"folder_name": msg.Name}
			}),
		),

		DeleteFolder: commands.NewHandler(func(ctx context.Context, msg DeleteFolderCommand) error {
			return service.DeleteFolder(ctx, msg.FolderID)
		},
			commands.WithLogger[DeleteFolderCommand](logger),
			commands.WithOperation[DeleteFolderCommand]("folders.delete"),
			commands.WithMessageFields(func(msg DeleteFolderCommand) map[string]any {
				return map[string]any{"folder_id": msg.FolderID}
			}),
		),

		CreatePage: commands.NewHandler(func(ctx context.Context, msg CreatePageCommand) error {
			page, err := service.CreatePage(ctx, pages.CreatePageRequest{
				Title:       msg.Title,
				Slug:        msg.Slug,
				Content:     msg.Content,
				FolderID:    msg.FolderID,
				IsPublished: msg.Publish,
				SortOrder:   msg.SortOrder,
			})
			if err != nil {
				return err
			}
			if msg.Result != nil {
				msg.Result(page)
			}
			return nil
		},
			commands.WithLogger[CreatePageCommand](logger),
			commands.WithOperation[CreatePageCommand]("pages.create"),
			commands.WithMessageFields(func(msg CreatePageCommand) map[string]any {
				return map[string]any{"folder_id": msg.FolderID, "title": msg.Title}
			}),
		),

		PublishPage: commands.NewHandler(func(ctx context.Context, msg PublishPageCommand) error {
			_, err := service.SetPublished(ctx, msg.PageID, msg.Published)
			return err
		},
			commands.WithLogger[PublishPageCommand](logger),
			commands.WithOperation[PublishPageCommand]("pages.publish"),
			commands.WithMessageFields(func(msg PublishPageCommand) map[string]any {
				return map[string]any{"page_id": msg.PageID, "published": msg.Published}
			}),
		),

		DeletePage: commands.NewHandler(func(ctx context.Context, msg DeletePageCommand) error {
			return service.DeletePage(ctx, msg.PageID)
		},
			commands.WithLogger[DeletePageCommand](logger),
			commands.WithOperation[DeletePageCommand]("pages.delete"),
			commands.WithMessageFields(func(msg DeletePageCommand) map[string]any {
				return map[string]any{"page_id": msg.PageID}
			}),
		),
	}, nil
}

// Register builds the handler set and hands every handler to reg.
func Register(reg commands.Registry, service pages.Service, provider interfaces.LoggerProvider) (*HandlerSet, error) {
	set, err := NewHandlerSet(service, commands.CommandLogger(provider, commands.GroupPages))
	if err != nil {
		return nil, err
	}
	if reg != nil {
		for _, handler := range set.Handlers() {
			if err := reg.RegisterCommand(handler); err != nil {
				return nil, err
			}
		}
	}
	return set, nil
}

// Subscribe attaches every handler to the go-command dispatcher.
func (s *HandlerSet) Subscribe(maxRetries int) []commands.Subscription {
	return []commands.Subscription{
		dispatcher.SubscribeCommand(s.CreateFolder, runner.WithMaxRetries(maxRetries)),
		dispatcher.SubscribeCommand(s.DeleteFolder, runner.WithMaxRetries(maxRetries)),
		dispatcher.SubscribeCommand(s.CreatePage, runner.WithMaxRetries(maxRetries)),
		dispatcher.SubscribeCommand(s.PublishPage, runner.WithMaxRetries(maxRetries)),
		dispatcher.SubscribeCommand(s.DeletePage, runner.WithMaxRetries(maxRetries)),
	}
}

// Handlers lists every handler in registration order.
func (s *HandlerSet) Handlers() []any {
	return []any{s.CreateFolder, s.DeleteFolder, s.CreatePage, s.PublishPage, s.DeletePage}
}
