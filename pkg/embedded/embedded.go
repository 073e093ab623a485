// Package embedded provides embedded static assets for the application.
package embedded

import (
	"embed"
)

// Files contains the dashboard frontend (frontend/dist), served by the HTTP
// server at / and /assets/.
//
//go:embed frontend/dist
var Files embed.FS
