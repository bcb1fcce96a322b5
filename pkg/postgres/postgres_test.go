package postgres

import (
	"errors"
	"fmt"
	"testing"

	"billetera-ia/pkg/config"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestDSN(t *testing.T) {
	cfg := &config.DatabaseConfig{
		Host: "db", Port: "5432", User: "u", Password: "p", DBName: "billetera", SSLMode: "disable",
	}
	want := "host=db port=5432 user=u password=p dbname=billetera sslmode=disable"
	if got := DSN(cfg); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain error", errors.New("boom"), false},
		{"unique violation", &pgconn.PgError{Code: "23505"}, true},
		{"wrapped unique violation", fmt.Errorf("insert tag: %w", &pgconn.PgError{Code: "23505"}), true},
		{"foreign key violation", &pgconn.PgError{Code: "23503"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUniqueViolation(tt.err); got != tt.want {
				t.Errorf("IsUniqueViolation() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("no migrations embedded")
	}
}
