package testhelpers

import (
	"path/filepath"

	"lottodesk/internal/db"
	"lottodesk/internal/models"
	"lottodesk/internal/store"

	g "github.com/onsi/gomega"
)

// NewTempDB creates a file-backed sqlite database under dir with the demo
// table migrated, and returns the store options pointing at it. A file is
// used because the store opens a fresh connection on every call.
func NewTempDB(dir string) store.Options {
	opts := store.Options{
		Driver: "sqlite",
		DSN:    filepath.Join(dir, "demo.db"),
	}

	conn, err := db.InitDB(opts.Driver, opts.DSN)
	g.Expect(err).NotTo(g.HaveOccurred())
	defer func() {
		g.Expect(db.Close(conn)).To(g.Succeed())
	}()

	g.Expect(conn.AutoMigrate(&models.Demo{})).To(g.Succeed())

	return opts
}

// CleanupDB removes every demo row.
func CleanupDB(opts store.Options) {
	conn, err := db.InitDB(opts.Driver, opts.DSN)
	g.Expect(err).NotTo(g.HaveOccurred())
	defer func() {
		g.Expect(db.Close(conn)).To(g.Succeed())
	}()

	err = conn.Exec("DELETE FROM demo").Error
	g.Expect(err).NotTo(g.HaveOccurred(), "Failed to clean table: demo")
}
