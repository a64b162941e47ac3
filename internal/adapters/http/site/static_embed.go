package site

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static templates/*.html
var siteFS embed.FS

// StaticFS returns the embedded stylesheet and images rooted at static/.
func StaticFS() http.FileSystem {
	sub, err := fs.Sub(siteFS, "static")
	if err != nil {
		return http.FS(siteFS)
	}
	return http.FS(sub)
}
