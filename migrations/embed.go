// Package migrations embeds the SQL schema files into the binary, so the
// daemon migrates its archive database without shipping loose .sql files.
package migrations

import (
	"embed"

	"github.com/trackworks/poseoverlay/internal/infrastructure/database"
)

//go:embed *.sql
var files embed.FS

func init() {
	database.SetSource(files)
}
