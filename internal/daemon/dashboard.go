package daemon

import (
	_ "embed"
	"net"
	"strings"
)

//go:embed dashboard.html
var dashboardHTML string

// renderDashboard substitutes the remote host and bound port into the
// embedded page.
func (s *apiServer) renderDashboard() string {
	port := ""
	if _, p, err := net.SplitHostPort(s.addr()); err == nil {
		port = p
	}
	page := strings.ReplaceAll(dashboardHTML, "${TARGET}", s.remoteHost)
	return strings.ReplaceAll(page, "${PORT}", port)
}
