package sqlite

import "database/sql"

// schema contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
// Timestamps are stored as Unix nanoseconds in UTC.
const schema = `
CREATE TABLE IF NOT EXISTS residents (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    email TEXT NOT NULL UNIQUE,
    name TEXT NOT NULL,
    provider TEXT,
    provider_id TEXT,
    active INTEGER NOT NULL DEFAULT 1,
    admin INTEGER NOT NULL DEFAULT 0,
    created_at INTEGER NOT NULL,
    UNIQUE (provider, provider_id)
);

CREATE TABLE IF NOT EXISTS units (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    number TEXT NOT NULL UNIQUE,
    resident_id INTEGER UNIQUE,
    FOREIGN KEY (resident_id) REFERENCES residents(id) ON DELETE SET NULL
);

CREATE TABLE IF NOT EXISTS common_areas (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE,
    description TEXT NOT NULL DEFAULT '',
    location TEXT NOT NULL DEFAULT '',
    capacity INTEGER NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS visitor_spots (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    number TEXT NOT NULL UNIQUE,
    description TEXT NOT NULL DEFAULT '',
    capacity INTEGER NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS parking_slots (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    number TEXT NOT NULL UNIQUE,
    plate TEXT NOT NULL DEFAULT '',
    model TEXT NOT NULL DEFAULT '',
    color TEXT NOT NULL DEFAULT '',
    visitor INTEGER NOT NULL DEFAULT 0,
    unit_id INTEGER,
    FOREIGN KEY (unit_id) REFERENCES units(id) ON DELETE SET NULL,
    CHECK (visitor = 0 OR unit_id IS NULL)
);

CREATE TABLE IF NOT EXISTS debts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    unit_id INTEGER NOT NULL,
    amount REAL NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    due_at INTEGER,
    created_at INTEGER NOT NULL,
    paid INTEGER NOT NULL DEFAULT 0,
    FOREIGN KEY (unit_id) REFERENCES units(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS amenity_reservations (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    area_id INTEGER NOT NULL,
    unit_id INTEGER NOT NULL,
    start_at INTEGER NOT NULL,
    end_at INTEGER NOT NULL,
    state TEXT NOT NULL DEFAULT 'active' CHECK (state IN ('active', 'cancelled', 'completed')),
    created_at INTEGER NOT NULL,
    FOREIGN KEY (area_id) REFERENCES common_areas(id),
    FOREIGN KEY (unit_id) REFERENCES units(id),
    CHECK (end_at > start_at)
);

CREATE TABLE IF NOT EXISTS visitor_reservations (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    spot_id INTEGER,
    parking_slot_id INTEGER,
    unit_id INTEGER NOT NULL,
    plate TEXT,
    start_at INTEGER NOT NULL,
    end_at INTEGER NOT NULL,
    state TEXT NOT NULL DEFAULT 'active' CHECK (state IN ('active', 'cancelled', 'completed')),
    created_at INTEGER NOT NULL,
    FOREIGN KEY (spot_id) REFERENCES visitor_spots(id),
    FOREIGN KEY (parking_slot_id) REFERENCES parking_slots(id),
    FOREIGN KEY (unit_id) REFERENCES units(id),
    CHECK ((spot_id IS NULL) <> (parking_slot_id IS NULL)),
    CHECK (end_at > start_at)
);

CREATE TABLE IF NOT EXISTS pending_registrations (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    email TEXT NOT NULL UNIQUE,
    name TEXT NOT NULL,
    provider TEXT,
    provider_id TEXT,
    unit_number TEXT NOT NULL DEFAULT '',
    phone TEXT NOT NULL DEFAULT '',
    notes TEXT NOT NULL DEFAULT '',
    created_at INTEGER NOT NULL,
    approved_by INTEGER,
    approved_at INTEGER,
    FOREIGN KEY (approved_by) REFERENCES residents(id),
    CHECK ((approved_by IS NULL) = (approved_at IS NULL))
);

-- A unit has at most one resident (non-visitor) parking slot.
CREATE UNIQUE INDEX IF NOT EXISTS idx_parking_slots_resident_unit
    ON parking_slots(unit_id) WHERE visitor = 0 AND unit_id IS NOT NULL;

CREATE INDEX IF NOT EXISTS idx_pending_registrations_pending ON pending_registrations(approved_by, created_at);
CREATE INDEX IF NOT EXISTS idx_debts_unit_id ON debts(unit_id, paid);
CREATE INDEX IF NOT EXISTS idx_amenity_reservations_area ON amenity_reservations(area_id, state, start_at);
CREATE INDEX IF NOT EXISTS idx_amenity_reservations_unit ON amenity_reservations(unit_id);
CREATE INDEX IF NOT EXISTS idx_visitor_reservations_spot ON visitor_reservations(spot_id, state, start_at);
CREATE INDEX IF NOT EXISTS idx_visitor_reservations_slot ON visitor_reservations(parking_slot_id, state, start_at);
CREATE INDEX IF NOT EXISTS idx_visitor_reservations_unit ON visitor_reservations(unit_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
