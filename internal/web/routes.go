package web

import (
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/kozaktomas/attend-kiosk/internal/web/handlers"
	"github.com/kozaktomas/attend-kiosk/internal/web/static"
)

func (s *Server) setupRoutes() {
	broker := handlers.NewConfirmBroker()

	stateHandler := handlers.NewStateHandler(s.engine)
	registerHandler := handlers.NewRegisterHandler(s.engine, &s.config.Guidance)
	recognizeHandler := handlers.NewRecognizeHandler(s.engine, &s.config.Guidance)
	usersHandler := handlers.NewUsersHandler(s.engine, broker, &s.config.Guidance)
	attendanceHandler := handlers.NewAttendanceHandler(s.engine, broker, &s.config.Guidance)

	s.router.Get("/api/v1/health", handlers.HealthCheck)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/state", stateHandler.Get)
		r.Post("/state/refresh", stateHandler.Refresh)
		r.Post("/tab", stateHandler.SetTab)

		r.Post("/register", registerHandler.Register)
		r.Post("/recognize", recognizeHandler.Recognize)

		r.Get("/users", usersHandler.List)
		r.Get("/users/{username}", usersHandler.Get)
		r.Delete("/users/{username}", usersHandler.Delete)

		r.Delete("/attendance/today/{username}", attendanceHandler.Delete)
		r.Post("/attendance/clear", attendanceHandler.Clear)
	})

	// Serve static files for the kiosk frontend (SPA)
	s.router.Get("/*", s.serveSPA)
}

// serveSPA serves the single-page kiosk frontend when it is embedded,
// falling back to a placeholder page otherwise.
func (s *Server) serveSPA(w http.ResponseWriter, r *http.Request) {
	if static.HasDist() {
		fs := static.GetFileSystem()
		path := r.URL.Path
		if path == "/" {
			path = "/index.html"
		}

		f, err := fs.Open(path)
		if err == nil {
			defer f.Close()

			stat, err := f.Stat()
			if err == nil && !stat.IsDir() {
				w.Header().Set("Content-Type", contentTypeFor(path))
				if strings.HasPrefix(path, "/assets/") {
					w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
				}
				w.WriteHeader(http.StatusOK)
				io.Copy(w, f)
				return
			}
		}

		// SPA routing: unknown non-asset paths get the app shell.
		if !strings.HasPrefix(path, "/assets/") {
			indexFile, err := fs.Open("/index.html")
			if err == nil {
				defer indexFile.Close()
				w.Header().Set("Content-Type", "text/html; charset=utf-8")
				w.WriteHeader(http.StatusOK)
				io.Copy(w, indexFile)
				return
			}
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`<!DOCTYPE html>
<html>
<head>
    <title>Attendance Kiosk</title>
    <style>
        body { font-family: system-ui, sans-serif; display: flex; justify-content: center; align-items: center; height: 100vh; margin: 0; background: #0f172a; color: #eee; }
        .container { text-align: center; }
        h1 { color: #38bdf8; }
        p { color: #aaa; }
        a { color: #38bdf8; }
        code { background: #1e293b; padding: 2px 8px; border-radius: 4px; }
    </style>
</head>
<body>
    <div class="container">
        <h1>Attendance Kiosk</h1>
        <p>Frontend is not built yet. Run <code>make build-web</code> to build the frontend.</p>
        <p>API is available at <a href="/api/v1/health">/api/v1/health</a></p>
    </div>
</body>
</html>`))
}

func contentTypeFor(path string) string {
	switch {
	case strings.HasSuffix(path, ".html"):
		return "text/html; charset=utf-8"
	case strings.HasSuffix(path, ".css"):
		return "text/css; charset=utf-8"
	case strings.HasSuffix(path, ".js"):
		return "application/javascript; charset=utf-8"
	case strings.HasSuffix(path, ".json"):
		return "application/json"
	case strings.HasSuffix(path, ".svg"):
		return "image/svg+xml"
	case strings.HasSuffix(path, ".png"):
		return "image/png"
	case strings.HasSuffix(path, ".jpg"), strings.HasSuffix(path, ".jpeg"):
		return "image/jpeg"
	case strings.HasSuffix(path, ".ico"):
		return "image/x-icon"
	case strings.HasSuffix(path, ".woff2"):
		return "font/woff2"
	case strings.HasSuffix(path, ".woff"):
		return "font/woff"
	}
	return "application/octet-stream"
}
