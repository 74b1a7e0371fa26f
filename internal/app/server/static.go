package server

import (
	"net/http"
	"path"
	"path/filepath"
	"strings"
)

// spaHandler serves regular files under root and answers everything else with
// root/index.html. Dotfiles and anything under a dot directory are never served.
func spaHandler(root string) http.HandlerFunc {
	dir := http.Dir(root)
	fileServer := http.FileServer(dir)
	index := filepath.Join(root, "index.html")

	return func(w http.ResponseWriter, r *http.Request) {
		name := path.Clean("/" + r.URL.Path)

		if !hasDotSegment(name) {
			if f, err := dir.Open(name); err == nil {
				info, statErr := f.Stat()
				f.Close()
				if statErr == nil && !info.IsDir() {
					fileServer.ServeHTTP(w, r)
					return
				}
			}
		}

		http.ServeFile(w, r, index)
	}
}

func hasDotSegment(name string) bool {
	for _, segment := range strings.Split(name, "/") {
		if strings.HasPrefix(segment, ".") {
			return true
		}
	}
	return false
}
