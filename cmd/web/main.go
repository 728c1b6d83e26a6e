// Command web serves a landing page telling visitors how to reach the
// SSH game server.
package main

import (
	"html/template"
	"net"
	"net/http"
	"os"

	"github.com/charmbracelet/log"

	"github.com/tomz197/starduel/internal/config"
	simconfig "github.com/tomz197/starduel/internal/loop/config"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"
)

var page = template.Must(template.New("index").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>starduel</title>
<style>
body { background: #05060a; color: #d8e4ff; font-family: monospace; text-align: center; padding-top: 12vh; }
h1 { color: #6ff; letter-spacing: 0.4em; }
code { background: #111826; padding: 0.4em 0.8em; border-radius: 4px; }
td { padding: 0.1em 1.2em; text-align: left; }
table { margin: 2em auto; }
</style>
</head>
<body>
<h1>STARDUEL</h1>
<p>Two ships, one star. Hot-seat duel in your terminal.</p>
<p><code>ssh -t -p {{.Port}} {{.Host}}</code></p>
<table>
<tr><td></td><td>Player A</td><td>Player B</td></tr>
<tr><td>Rotate</td><td>A D</td><td>J L / arrows</td></tr>
<tr><td>Thrust</td><td>W</td><td>I / Up</td></tr>
<tr><td>Fire</td><td>E F</td><td>O /</td></tr>
<tr><td>Hyperspace</td><td>S</td><td>K / Down</td></tr>
</table>
<p>First to {{.Target}} wins the match.</p>
</body>
</html>
`))

type pageData struct {
	Host   string
	Port   string
	Target int
}

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "web"})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", "err", err)
	}
	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	data := pageData{
		Host:   config.GetEnv("SSH_DISPLAY_HOST", "your-server.com"),
		Port:   cfg.SSHPort,
		Target: cfg.TargetScore,
	}
	if data.Target == 0 {
		data.Target = simconfig.TargetScore
	}

	addr := net.JoinHostPort(host, port)
	logger.Info("starting web server", "addr", "http://"+addr)
	if err := http.ListenAndServe(addr, newHandler(data, logger)); err != nil {
		logger.Fatal("server error", "err", err)
	}
}

func newHandler(data pageData, logger *log.Logger) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := page.Execute(w, data); err != nil {
			logger.Error("render page", "err", err)
		}
	})
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return mux
}
