package beyondbigo

import "embed"

// EmbeddedAssets contains the files shipped with the binary:
// content/*.md (the bundled posts), pages/*.md (standalone pages),
// templates/*.html (views) and embedded/* (public assets).
//
//go:embed content/*.md pages/*.md templates/*.html embedded/*
var EmbeddedAssets embed.FS
