// ABOUTME: MCP server setup for the lift workout tracker.
// ABOUTME: Owns the session controller and rest timer behind the stdio tools.
package mcp

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/harperreed/lift/internal/clock"
	"github.com/harperreed/lift/internal/notify"
	"github.com/harperreed/lift/internal/session"
	"github.com/harperreed/lift/internal/storage"
	"github.com/harperreed/lift/internal/timer"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server with storage, session and timer access.
type Server struct {
	mcpServer *mcp.Server
	repo      storage.Repository
	session   *session.Controller
	timer     *timer.Timer
	logger    *log.Logger
	userID    string
}

// Option configures a Server.
type Option func(*options)

type options struct {
	clock     clock.Clock
	timerOpts []timer.Option
}

// WithClock overrides the clock shared by the session and the rest timer.
func WithClock(c clock.Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithTimerOptions passes options through to the rest timer.
func WithTimerOptions(opts ...timer.Option) Option {
	return func(o *options) { o.timerOpts = append(o.timerOpts, opts...) }
}

// NewServer creates a new MCP server for the default user, resuming any
// workout left in progress.
func NewServer(ctx context.Context, repo storage.Repository, sched notify.Scheduler, logger *log.Logger, opts ...Option) (*Server, error) {
	o := options{clock: clock.Real{}}
	for _, opt := range opts {
		opt(&o)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	user, err := repo.GetOrCreateDefaultUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}

	sess := session.New(repo, o.clock, logger)
	if err := sess.Restore(ctx, user.ID); err != nil {
		return nil, err
	}

	tm := timer.New(sched, o.clock, logger, o.timerOpts...)
	tm.OnExpire(func() { logger.Info("rest timer finished") })

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "lift",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		repo:      repo,
		session:   sess,
		timer:     tm,
		logger:    logger,
		userID:    user.ID,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

// Close stops the rest timer. The repository is owned by the caller.
func (s *Server) Close() {
	s.timer.Close()
}
