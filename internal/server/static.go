package server

import (
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/go-chi/chi/v5"
)

// registerStatic はフロントエンドのページと静的ファイルを STATIC_DIR から配信する。
func (s *Server) registerStatic(router chi.Router) {
	if s.staticDir == "" {
		return
	}

	router.Get("/", s.pageHandler("index.html"))
	router.Get("/results", s.pageHandler("results.html"))
	router.Get("/*", s.assetHandler())
}

func (s *Server) pageHandler(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		file := filepath.Join(s.staticDir, name)
		if !isRegularFile(file) {
			http.NotFound(w, r)
			return
		}
		http.ServeFile(w, r, file)
	}
}

// assetHandler は存在する通常ファイルのみ返す。ディレクトリ一覧は出さない。
func (s *Server) assetHandler() http.HandlerFunc {
	files := http.FileServer(http.Dir(s.staticDir))
	return func(w http.ResponseWriter, r *http.Request) {
		name := path.Clean("/" + r.URL.Path)
		if !isRegularFile(filepath.Join(s.staticDir, filepath.FromSlash(name))) {
			http.NotFound(w, r)
			return
		}
		files.ServeHTTP(w, r)
	}
}

func isRegularFile(name string) bool {
	info, err := os.Stat(name)
	return err == nil && info.Mode().IsRegular()
}
