package daemon

import (
	"log/slog"

	"relink/internal/logging"
	"relink/internal/probe"
)

// openBrowser launches the platform opener detached so the daemon does not
// inherit the browser as a child. Failure is logged and otherwise ignored.
func openBrowser(url string, logger *slog.Logger) {
	opener := probe.OpenerCommand()
	if err := probe.Detach(opener, url); err != nil {
		logger.Warn("failed to open dashboard in browser",
			logging.String("opener", opener),
			logging.Error(err))
		return
	}
	logger.Info("opened dashboard in browser", logging.String("url", url))
}
