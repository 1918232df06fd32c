package database

import (
	"database/sql"
	"fmt"
	"regexp"
	"strconv"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Drivers supportés: PostgreSQL en production, SQLite (pur Go) pour
// les analyses locales et les tests d'intégration.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

var (
	DB         *sql.DB
	driverName string
)

// Init ouvre la connexion et configure le pool.
func Init(driver, dsn string) error {
	if driver != DriverPostgres && driver != DriverSQLite {
		return fmt.Errorf("unsupported database driver: %q", driver)
	}

	var err error
	DB, err = sql.Open(driver, dsn)
	if err != nil {
		return err
	}
	driverName = driver

	if driver == DriverSQLite {
		// SQLite sérialise les écritures: une seule connexion évite
		// les erreurs SQLITE_BUSY sur les mises à jour par lots.
		DB.SetMaxOpenConns(1)
	} else {
		// Pool de connexions optimisé
		DB.SetMaxOpenConns(25)
		DB.SetMaxIdleConns(5)
		DB.SetConnMaxLifetime(5 * time.Minute)
	}

	return DB.Ping()
}

func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}

// Driver retourne le nom du driver actif.
func Driver() string {
	return driverName
}

var placeholderPattern = regexp.MustCompile(`\$(\d+)`)

// Rebind traduit une requête écrite avec des placeholders PostgreSQL
// ($1, $2, ...) vers la forme positionnelle `?` attendue par SQLite,
// en ré-ordonnant les arguments par occurrence. Une requête peut donc
// référencer le même paramètre plusieurs fois.
func Rebind(query string, args ...interface{}) (string, []interface{}) {
	if driverName != DriverSQLite {
		return query, args
	}

	rebound := make([]interface{}, 0, len(args))
	out := placeholderPattern.ReplaceAllStringFunc(query, func(m string) string {
		n, err := strconv.Atoi(m[1:])
		if err != nil || n < 1 || n > len(args) {
			// Placeholder hors bornes: laissé tel quel, l'erreur
			// remontera du driver à l'exécution.
			return m
		}
		rebound = append(rebound, args[n-1])
		return "?"
	})
	return out, rebound
}
