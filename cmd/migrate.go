package cmd

import (
	"database/sql"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/anseninnov/conference-registration/config"

	_ "github.com/go-sql-driver/mysql"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	migrationsDir string
	migrateDown   bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	Long:  "Apply the SQL migrations in order, or roll them back with --down.",
	Run:   runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.Flags().StringVar(&migrationsDir, "dir", "migrations", "Directory containing migration files")
	migrateCmd.Flags().BoolVar(&migrateDown, "down", false, "Roll migrations back instead of applying them")
}

func runMigrate(_ *cobra.Command, _ []string) {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	db, err := sql.Open("mysql", cfg.MySQL.DSN)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logrus.WithError(err).Fatal("Failed to ping database")
	}

	suffix := ".up.sql"
	if migrateDown {
		suffix = ".down.sql"
	}

	files, err := migrationFiles(migrationsDir, suffix)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to read migrations")
	}
	if migrateDown {
		sort.Sort(sort.Reverse(sort.StringSlice(files)))
	}

	for _, file := range files {
		raw, err := os.ReadFile(file)
		if err != nil {
			logrus.WithError(err).WithField("file", file).Fatal("Failed to read migration")
		}

		for _, statement := range splitStatements(string(raw)) {
			if _, err := db.Exec(statement); err != nil {
				logrus.WithError(err).WithField("file", file).Fatal("Migration failed")
			}
		}
		logrus.WithField("file", filepath.Base(file)).Info("Migration applied")
	}
}

func migrationFiles(dir, suffix string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), suffix) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

func splitStatements(raw string) []string {
	parts := strings.Split(raw, ";")
	statements := make([]string, 0, len(parts))
	for _, part := range parts {
		if statement := strings.TrimSpace(part); statement != "" {
			statements = append(statements, statement)
		}
	}
	return statements
}
