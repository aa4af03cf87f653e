package main

import (
	"embed"
	"io/fs"

	"github.com/lazypower/selfcare/internal/server"
)

//go:embed all:web
var webDist embed.FS

func init() {
	sub, err := fs.Sub(webDist, "web")
	if err != nil {
		return
	}
	server.SetUI(sub)
}
