// Package hrsql holds the SQL recipes of the HR schema,
// written against flsql.Connection so every database/sql or pgx backed adapter can share them.
package hrsql

import (
	"fmt"
	"strings"
)

// Dialect captures the differences between the supported SQL engines.
type Dialect struct {
	Name string
	// Placeholder returns the n-th positional parameter, counted from 1.
	Placeholder func(n int) string
	// Returning tells if INSERT ... RETURNING is available.
	// Without it, the generated key is read with LastInsertID in the same transaction.
	Returning bool
	// LastInsertID is the query that yields the last generated key of the session.
	LastInsertID string
	// InsertIgnore renders an insert that skips rows violating a unique key.
	InsertIgnore func(table string, columns []string, values string) string
	// Schema is the list of DDL statements that create the HR tables.
	Schema []string
	// AfterSeed statements position the key generation after the seed rows are in place.
	AfterSeed []string
}

func (d Dialect) params(from, n int) string {
	ps := make([]string, n)
	for i := range ps {
		ps[i] = d.Placeholder(from + i)
	}
	return strings.Join(ps, ", ")
}

func questionMark(int) string { return "?" }

func dollar(n int) string { return fmt.Sprintf("$%d", n) }

var Postgres = Dialect{
	Name:        "postgres",
	Placeholder: dollar,
	Returning:   true,
	InsertIgnore: func(table string, columns []string, values string) string {
		return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) ON CONFLICT DO NOTHING", table, strings.Join(columns, ", "), values)
	},
	Schema: []string{
		`CREATE TABLE IF NOT EXISTS division (
	division_key  INT GENERATED BY DEFAULT AS IDENTITY (START WITH 1000) PRIMARY KEY,
	division_name VARCHAR(30) NOT NULL UNIQUE
)`,
		`CREATE TABLE IF NOT EXISTS department (
	department_key  INT GENERATED BY DEFAULT AS IDENTITY (START WITH 1000) PRIMARY KEY,
	department_name VARCHAR(30) NOT NULL UNIQUE,
	division_key    INT NOT NULL REFERENCES division (division_key)
)`,
		`CREATE TABLE IF NOT EXISTS employee_classification (
	employee_classification_key  INT GENERATED BY DEFAULT AS IDENTITY (START WITH 1000) PRIMARY KEY,
	employee_classification_name VARCHAR(200) NOT NULL UNIQUE,
	is_exempt                    BOOLEAN NOT NULL DEFAULT FALSE,
	is_employee                  BOOLEAN NOT NULL DEFAULT TRUE
)`,
		`CREATE TABLE IF NOT EXISTS employee (
	employee_key                INT GENERATED BY DEFAULT AS IDENTITY (START WITH 1000) PRIMARY KEY,
	first_name                  VARCHAR(50) NOT NULL,
	middle_name                 VARCHAR(50) NULL,
	last_name                   VARCHAR(50) NOT NULL,
	title                       VARCHAR(100) NULL,
	office_phone                VARCHAR(15) NULL,
	cell_phone                  VARCHAR(15) NULL,
	employee_classification_key INT NOT NULL REFERENCES employee_classification (employee_classification_key)
)`,
	},
}

var SQLite = Dialect{
	Name:         "sqlite",
	Placeholder:  questionMark,
	Returning:    true,
	InsertIgnore: insertIgnore("INSERT OR IGNORE"),
	Schema: []string{
		`CREATE TABLE IF NOT EXISTS division (
	division_key  INTEGER PRIMARY KEY AUTOINCREMENT,
	division_name TEXT NOT NULL UNIQUE
)`,
		`CREATE TABLE IF NOT EXISTS department (
	department_key  INTEGER PRIMARY KEY AUTOINCREMENT,
	department_name TEXT NOT NULL UNIQUE,
	division_key    INTEGER NOT NULL REFERENCES division (division_key)
)`,
		`CREATE TABLE IF NOT EXISTS employee_classification (
	employee_classification_key  INTEGER PRIMARY KEY AUTOINCREMENT,
	employee_classification_name TEXT NOT NULL UNIQUE,
	is_exempt                    INTEGER NOT NULL DEFAULT 0,
	is_employee                  INTEGER NOT NULL DEFAULT 1
)`,
		`CREATE TABLE IF NOT EXISTS employee (
	employee_key                INTEGER PRIMARY KEY AUTOINCREMENT,
	first_name                  TEXT NOT NULL,
	middle_name                 TEXT NULL,
	last_name                   TEXT NOT NULL,
	title                       TEXT NULL,
	office_phone                TEXT NULL,
	cell_phone                  TEXT NULL,
	employee_classification_key INTEGER NOT NULL REFERENCES employee_classification (employee_classification_key)
)`,
	},
	AfterSeed: sqliteSequenceAt(999, "division", "department", "employee_classification", "employee"),
}

func sqliteSequenceAt(seq int, tables ...string) []string {
	var stmts []string
	for _, table := range tables {
		stmts = append(stmts, fmt.Sprintf(
			"INSERT INTO sqlite_sequence (name, seq) SELECT '%[1]s', %[2]d WHERE NOT EXISTS (SELECT 1 FROM sqlite_sequence WHERE name = '%[1]s')",
			table, seq))
	}
	return append(stmts, fmt.Sprintf("UPDATE sqlite_sequence SET seq = %d WHERE seq < %d", seq, seq))
}

var MySQL = Dialect{
	Name:         "mysql",
	Placeholder:  questionMark,
	Returning:    false,
	LastInsertID: "SELECT LAST_INSERT_ID()",
	InsertIgnore: insertIgnore("INSERT IGNORE"),
	Schema: []string{
		"CREATE TABLE IF NOT EXISTS division (" +
			"division_key  INT NOT NULL AUTO_INCREMENT PRIMARY KEY," +
			"division_name VARCHAR(30) NOT NULL UNIQUE" +
			") AUTO_INCREMENT = 1000",
		"CREATE TABLE IF NOT EXISTS department (" +
			"department_key  INT NOT NULL AUTO_INCREMENT PRIMARY KEY," +
			"department_name VARCHAR(30) NOT NULL UNIQUE," +
			"division_key    INT NOT NULL," +
			"FOREIGN KEY (division_key) REFERENCES division (division_key)" +
			") AUTO_INCREMENT = 1000",
		"CREATE TABLE IF NOT EXISTS employee_classification (" +
			"employee_classification_key  INT NOT NULL AUTO_INCREMENT PRIMARY KEY," +
			"employee_classification_name VARCHAR(200) COLLATE utf8mb4_bin NOT NULL UNIQUE," +
			"is_exempt                    BOOLEAN NOT NULL DEFAULT FALSE," +
			"is_employee                  BOOLEAN NOT NULL DEFAULT TRUE" +
			") AUTO_INCREMENT = 1000 DEFAULT CHARSET = utf8mb4",
		"CREATE TABLE IF NOT EXISTS employee (" +
			"employee_key                INT NOT NULL AUTO_INCREMENT PRIMARY KEY," +
			"first_name                  VARCHAR(50) COLLATE utf8mb4_bin NOT NULL," +
			"middle_name                 VARCHAR(50) COLLATE utf8mb4_bin NULL," +
			"last_name                   VARCHAR(50) COLLATE utf8mb4_bin NOT NULL," +
			"title                       VARCHAR(100) NULL," +
			"office_phone                VARCHAR(15) NULL," +
			"cell_phone                  VARCHAR(15) NULL," +
			"employee_classification_key INT NOT NULL," +
			"FOREIGN KEY (employee_classification_key) REFERENCES employee_classification (employee_classification_key)" +
			") AUTO_INCREMENT = 1000 DEFAULT CHARSET = utf8mb4",
	},
}

func insertIgnore(verb string) func(table string, columns []string, values string) string {
	return func(table string, columns []string, values string) string {
		return fmt.Sprintf("%s INTO %s (%s) VALUES (%s)", verb, table, strings.Join(columns, ", "), values)
	}
}

// Lookup returns the dialect by its name.
func Lookup(name string) (Dialect, bool) {
	for _, d := range []Dialect{Postgres, SQLite, MySQL} {
		if d.Name == name {
			return d, true
		}
	}
	return Dialect{}, false
}
