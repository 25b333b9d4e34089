// Package cli implements the metactl REPL: interactive commands for reading
// and mutating a project's metadata document.
package cli

import (
	"bufio"
	"io"
	"os"

	"github.com/dmitrijs2005/metastore/internal/client/config"
	"github.com/dmitrijs2005/metastore/internal/client/metadata"
	"github.com/dmitrijs2005/metastore/internal/logging"
)

type App struct {
	config   *config.Config
	accessor *metadata.HTTPAccessor
	store    *metadata.Store
	logger   logging.Logger
	reader   *bufio.Reader
}

func NewApp(c *config.Config, logger logging.Logger) (*App, error) {

	accessor := metadata.NewHTTPAccessor(c.ServerEndpointURL, c.Project, []byte(c.SecretKey), c.RequestTimeout)
	store := metadata.NewStore(accessor, logger)

	return &App{
		config:   c,
		accessor: accessor,
		store:    store,
		logger:   logger,
		reader:   bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) out() io.Writer {
	return os.Stdout
}
