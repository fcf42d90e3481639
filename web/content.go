// Package web embeds the dashboard's single-page UI.
package web

import "embed"

//go:embed index.html
var Content embed.FS
