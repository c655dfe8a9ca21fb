// Package database opens and migrates the overlay's SQLite archive.
//
// The archive holds capture sessions: every saved point set is recorded so
// earlier captures stay inspectable after the save file is overwritten.
// SQLite fits the workload - one writer (the save action), occasional
// readers (the debug API), and no server to run next to a debug tool.
//
// Open configures WAL mode and a busy timeout from config.yaml and limits
// the pool to a single connection, matching SQLite's one-writer model.
// Schema versions live in the embedded migrations package; Migrate applies
// whatever is pending on each start, so a fresh database and an upgraded
// one take the same path:
//
//	db, err := database.Open(cfg)
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//	if err := db.Migrate(ctx); err != nil {
//	    return err
//	}
package database
