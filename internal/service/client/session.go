package client

import (
	"context"
	"fmt"
	"io"
	"os"

	"google.golang.org/grpc/status"

	"github.com/oshokin/alarm-clock/internal/config"
	"github.com/oshokin/alarm-clock/internal/logger"
	"github.com/oshokin/alarm-clock/internal/service/common"
)

// Options configures how clockctl reaches the daemon.
type Options struct {
	// ConfigPath to YAML settings file, defaults to standard filename if empty.
	ConfigPath string
	// ServerAddress overrides server address from config when specified.
	ServerAddress string
	// Output receives rendered results; os.Stdout when nil.
	Output io.Writer
}

// Session is a connection to clockd plus the writer results go to.
type Session struct {
	client *common.Client
	out    io.Writer
}

// Connect loads settings and dials the daemon.
func Connect(ctx context.Context, opts *Options) (*Session, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	serverAddress := cfg.ServerAddress
	if opts.ServerAddress != "" {
		serverAddress = opts.ServerAddress
	}

	client, err := common.Dial(ctx, serverAddress, common.WithCallTimeout(cfg.Timeout))
	if err != nil {
		return nil, err
	}

	logger.DebugKV(ctx, "Connected", "server_address", serverAddress)

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	return &Session{client: client, out: out}, nil
}

// Close releases the connection.
func (s *Session) Close() error {
	return s.client.Close()
}

// printf writes to the session output; write errors on a terminal are not actionable.
func (s *Session) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.out, format, args...)
}

// callError turns a status error into a short message for the terminal.
func callError(operation string, err error) error {
	if st, ok := status.FromError(err); ok {
		return fmt.Errorf("%s: %s (%s)", operation, st.Message(), st.Code())
	}

	return fmt.Errorf("%s: %w", operation, err)
}
