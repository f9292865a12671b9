package store

const schemaSQLite = `
CREATE TABLE IF NOT EXISTS users (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    username      TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    role          TEXT NOT NULL DEFAULT 'user'
);

CREATE TABLE IF NOT EXISTS products (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    name       TEXT NOT NULL,
    unit_price REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS sources (
    id           INTEGER PRIMARY KEY AUTOINCREMENT,
    name         TEXT NOT NULL,
    unit         TEXT NOT NULL DEFAULT 'L',
    quantity     REAL NOT NULL DEFAULT 0,
    last_updated TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS product_sources (
    product_id INTEGER PRIMARY KEY,
    source_id  INTEGER NOT NULL,
    factor     REAL NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS inventory (
    id           INTEGER PRIMARY KEY AUTOINCREMENT,
    product_id   INTEGER NOT NULL UNIQUE,
    quantity     REAL NOT NULL DEFAULT 0,
    last_updated TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS movements (
    id        INTEGER PRIMARY KEY AUTOINCREMENT,
    kind      TEXT NOT NULL,
    ref_id    INTEGER NOT NULL,
    delta     REAL NOT NULL,
    reason    TEXT NOT NULL DEFAULT '',
    timestamp TEXT NOT NULL,
    user_id   INTEGER
);
CREATE INDEX IF NOT EXISTS idx_movements_kind_ref ON movements(kind, ref_id);

CREATE TABLE IF NOT EXISTS sales (
    id             INTEGER PRIMARY KEY AUTOINCREMENT,
    uuid           TEXT NOT NULL UNIQUE,
    product_id     INTEGER NOT NULL,
    quantity       REAL NOT NULL,
    unit_price     REAL NOT NULL,
    total          REAL NOT NULL,
    payment_method TEXT NOT NULL DEFAULT 'Cash',
    timestamp      TEXT NOT NULL,
    created_by     INTEGER,
    bottles_used   INTEGER NOT NULL DEFAULT 0,
    bottle_price   REAL NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_sales_timestamp ON sales(timestamp);

CREATE TABLE IF NOT EXISTS price_history (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    product_id INTEGER NOT NULL,
    old_price  REAL,
    new_price  REAL NOT NULL,
    changed_by INTEGER,
    reason     TEXT NOT NULL DEFAULT '',
    timestamp  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS outbox (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    topic      TEXT NOT NULL,
    payload    BLOB NOT NULL,
    msg_type   TEXT NOT NULL DEFAULT '',
    retries    INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL,
    sent_at    TEXT
);
CREATE INDEX IF NOT EXISTS idx_outbox_pending ON outbox(sent_at) WHERE sent_at IS NULL;
`
