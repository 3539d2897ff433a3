package migrations

import (
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

// Run creates the database schema required for the POS backend. Every
// statement is idempotent so Run is safe on each start.
func Run(db *sqlx.DB) error {
	schema := sqliteSchema
	if db.DriverName() == "pgx" {
		schema = postgresSchema
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return errors.Wrap(err, "migration failed")
		}
	}
	return nil
}

var sqliteSchema = []string{
	`PRAGMA foreign_keys = ON;`,
	`CREATE TABLE IF NOT EXISTS users (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            username TEXT NOT NULL,
            email TEXT NOT NULL UNIQUE,
            password TEXT NOT NULL,
            role TEXT NOT NULL,
            created_at DATETIME NOT NULL,
            updated_at DATETIME NOT NULL
        );`,
	`CREATE TABLE IF NOT EXISTS settings (
            id INTEGER PRIMARY KEY CHECK (id = 1),
            store_name TEXT NOT NULL DEFAULT '',
            address TEXT NOT NULL DEFAULT '',
            phone TEXT NOT NULL DEFAULT '',
            email TEXT NOT NULL DEFAULT '',
            currency TEXT NOT NULL DEFAULT 'USD',
            tax_rate REAL NOT NULL DEFAULT 0,
            updated_at DATETIME NOT NULL
        );`,
	`CREATE TABLE IF NOT EXISTS categories (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            name TEXT NOT NULL UNIQUE,
            description TEXT NOT NULL DEFAULT '',
            created_at DATETIME NOT NULL,
            updated_at DATETIME NOT NULL
        );`,
	`CREATE TABLE IF NOT EXISTS medicines (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            name TEXT NOT NULL,
            category_id INTEGER NOT NULL,
            dosage_form TEXT NOT NULL,
            strength TEXT NOT NULL,
            manufacturer TEXT NOT NULL DEFAULT '',
            indication TEXT NOT NULL DEFAULT '',
            classification TEXT NOT NULL DEFAULT '',
            price REAL NOT NULL,
            cost REAL,
            stock INTEGER NOT NULL DEFAULT 0,
            min_stock INTEGER NOT NULL DEFAULT 0,
            barcode TEXT NOT NULL DEFAULT '',
            sku TEXT NOT NULL DEFAULT '',
            expiry_date TEXT,
            created_at DATETIME NOT NULL,
            updated_at DATETIME NOT NULL,
            FOREIGN KEY(category_id) REFERENCES categories(id)
        );`,
	`CREATE INDEX IF NOT EXISTS idx_medicines_name_strength ON medicines (name, strength);`,
	`CREATE TABLE IF NOT EXISTS customers (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            name TEXT NOT NULL,
            email TEXT NOT NULL DEFAULT '',
            phone TEXT NOT NULL DEFAULT '',
            address TEXT NOT NULL DEFAULT '',
            created_at DATETIME NOT NULL,
            updated_at DATETIME NOT NULL
        );`,
	`CREATE TABLE IF NOT EXISTS suppliers (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            company_name TEXT NOT NULL,
            contact_name TEXT NOT NULL DEFAULT '',
            email TEXT NOT NULL DEFAULT '',
            phone TEXT NOT NULL DEFAULT '',
            address TEXT NOT NULL DEFAULT '',
            created_at DATETIME NOT NULL,
            updated_at DATETIME NOT NULL
        );`,
	`CREATE TABLE IF NOT EXISTS transactions (
            id TEXT PRIMARY KEY,
            customer_id INTEGER,
            subtotal REAL NOT NULL,
            tax_rate REAL NOT NULL,
            tax REAL NOT NULL,
            discount REAL NOT NULL DEFAULT 0,
            total REAL NOT NULL,
            amount_tendered REAL NOT NULL DEFAULT 0,
            change_due REAL NOT NULL DEFAULT 0,
            payment_method TEXT NOT NULL,
            payment_status TEXT NOT NULL,
            cashier_id INTEGER NOT NULL,
            cashier TEXT NOT NULL,
            created_at DATETIME NOT NULL
        );`,
	`CREATE TABLE IF NOT EXISTS transaction_items (
            transaction_id TEXT NOT NULL,
            position INTEGER NOT NULL,
            medicine_id INTEGER NOT NULL,
            name TEXT NOT NULL,
            strength TEXT NOT NULL DEFAULT '',
            quantity INTEGER NOT NULL,
            unit_price REAL NOT NULL,
            subtotal REAL NOT NULL,
            PRIMARY KEY (transaction_id, position),
            FOREIGN KEY(transaction_id) REFERENCES transactions(id)
        );`,
	`CREATE TABLE IF NOT EXISTS stock_entries (
            id TEXT PRIMARY KEY,
            medicine_id INTEGER NOT NULL,
            product_name TEXT NOT NULL,
            quantity INTEGER NOT NULL,
            type TEXT NOT NULL,
            reason TEXT NOT NULL DEFAULT '',
            supplier TEXT,
            cost REAL,
            created_at DATETIME NOT NULL
        );`,
	`CREATE INDEX IF NOT EXISTS idx_stock_entries_medicine ON stock_entries (medicine_id);`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
            id SERIAL PRIMARY KEY,
            username TEXT NOT NULL,
            email TEXT NOT NULL UNIQUE,
            password TEXT NOT NULL,
            role TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL
        );`,
	`CREATE TABLE IF NOT EXISTS settings (
            id INTEGER PRIMARY KEY CHECK (id = 1),
            store_name TEXT NOT NULL DEFAULT '',
            address TEXT NOT NULL DEFAULT '',
            phone TEXT NOT NULL DEFAULT '',
            email TEXT NOT NULL DEFAULT '',
            currency TEXT NOT NULL DEFAULT 'USD',
            tax_rate DOUBLE PRECISION NOT NULL DEFAULT 0,
            updated_at TIMESTAMPTZ NOT NULL
        );`,
	`CREATE TABLE IF NOT EXISTS categories (
            id SERIAL PRIMARY KEY,
            name TEXT NOT NULL UNIQUE,
            description TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL
        );`,
	`CREATE TABLE IF NOT EXISTS medicines (
            id SERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            category_id INTEGER NOT NULL REFERENCES categories(id),
            dosage_form TEXT NOT NULL,
            strength TEXT NOT NULL,
            manufacturer TEXT NOT NULL DEFAULT '',
            indication TEXT NOT NULL DEFAULT '',
            classification TEXT NOT NULL DEFAULT '',
            price DOUBLE PRECISION NOT NULL,
            cost DOUBLE PRECISION,
            stock INTEGER NOT NULL DEFAULT 0,
            min_stock INTEGER NOT NULL DEFAULT 0,
            barcode TEXT NOT NULL DEFAULT '',
            sku TEXT NOT NULL DEFAULT '',
            expiry_date TEXT,
            created_at TIMESTAMPTZ NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL
        );`,
	`CREATE INDEX IF NOT EXISTS idx_medicines_name_strength ON medicines (name, strength);`,
	`CREATE TABLE IF NOT EXISTS customers (
            id SERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            email TEXT NOT NULL DEFAULT '',
            phone TEXT NOT NULL DEFAULT '',
            address TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL
        );`,
	`CREATE TABLE IF NOT EXISTS suppliers (
            id SERIAL PRIMARY KEY,
            company_name TEXT NOT NULL,
            contact_name TEXT NOT NULL DEFAULT '',
            email TEXT NOT NULL DEFAULT '',
            phone TEXT NOT NULL DEFAULT '',
            address TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL
        );`,
	`CREATE TABLE IF NOT EXISTS transactions (
            id TEXT PRIMARY KEY,
            customer_id INTEGER,
            subtotal DOUBLE PRECISION NOT NULL,
            tax_rate DOUBLE PRECISION NOT NULL,
            tax DOUBLE PRECISION NOT NULL,
            discount DOUBLE PRECISION NOT NULL DEFAULT 0,
            total DOUBLE PRECISION NOT NULL,
            amount_tendered DOUBLE PRECISION NOT NULL DEFAULT 0,
            change_due DOUBLE PRECISION NOT NULL DEFAULT 0,
            payment_method TEXT NOT NULL,
            payment_status TEXT NOT NULL,
            cashier_id INTEGER NOT NULL,
            cashier TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL
        );`,
	`CREATE TABLE IF NOT EXISTS transaction_items (
            transaction_id TEXT NOT NULL REFERENCES transactions(id),
            position INTEGER NOT NULL,
            medicine_id INTEGER NOT NULL,
            name TEXT NOT NULL,
            strength TEXT NOT NULL DEFAULT '',
            quantity INTEGER NOT NULL,
            unit_price DOUBLE PRECISION NOT NULL,
            subtotal DOUBLE PRECISION NOT NULL,
            PRIMARY KEY (transaction_id, position)
        );`,
	`CREATE TABLE IF NOT EXISTS stock_entries (
            id TEXT PRIMARY KEY,
            medicine_id INTEGER NOT NULL,
            product_name TEXT NOT NULL,
            quantity INTEGER NOT NULL,
            type TEXT NOT NULL,
            reason TEXT NOT NULL DEFAULT '',
            supplier TEXT,
            cost DOUBLE PRECISION,
            created_at TIMESTAMPTZ NOT NULL
        );`,
	`CREATE INDEX IF NOT EXISTS idx_stock_entries_medicine ON stock_entries (medicine_id);`,
}
