package store

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS users (
    id            BIGSERIAL PRIMARY KEY,
    username      TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    role          TEXT NOT NULL DEFAULT 'user'
);

CREATE TABLE IF NOT EXISTS products (
    id         BIGSERIAL PRIMARY KEY,
    name       TEXT NOT NULL,
    unit_price DOUBLE PRECISION NOT NULL
);

CREATE TABLE IF NOT EXISTS sources (
    id           BIGSERIAL PRIMARY KEY,
    name         TEXT NOT NULL,
    unit         TEXT NOT NULL DEFAULT 'L',
    quantity     DOUBLE PRECISION NOT NULL DEFAULT 0,
    last_updated TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS product_sources (
    product_id BIGINT PRIMARY KEY,
    source_id  BIGINT NOT NULL,
    factor     DOUBLE PRECISION NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS inventory (
    id           BIGSERIAL PRIMARY KEY,
    product_id   BIGINT NOT NULL UNIQUE,
    quantity     DOUBLE PRECISION NOT NULL DEFAULT 0,
    last_updated TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS movements (
    id        BIGSERIAL PRIMARY KEY,
    kind      TEXT NOT NULL,
    ref_id    BIGINT NOT NULL,
    delta     DOUBLE PRECISION NOT NULL,
    reason    TEXT NOT NULL DEFAULT '',
    timestamp TEXT NOT NULL,
    user_id   BIGINT
);
CREATE INDEX IF NOT EXISTS idx_movements_kind_ref ON movements(kind, ref_id);

CREATE TABLE IF NOT EXISTS sales (
    id             BIGSERIAL PRIMARY KEY,
    uuid           TEXT NOT NULL UNIQUE,
    product_id     BIGINT NOT NULL,
    quantity       DOUBLE PRECISION NOT NULL,
    unit_price     DOUBLE PRECISION NOT NULL,
    total          DOUBLE PRECISION NOT NULL,
    payment_method TEXT NOT NULL DEFAULT 'Cash',
    timestamp      TEXT NOT NULL,
    created_by     BIGINT,
    bottles_used   BIGINT NOT NULL DEFAULT 0,
    bottle_price   DOUBLE PRECISION NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_sales_timestamp ON sales(timestamp);

CREATE TABLE IF NOT EXISTS price_history (
    id         BIGSERIAL PRIMARY KEY,
    product_id BIGINT NOT NULL,
    old_price  DOUBLE PRECISION,
    new_price  DOUBLE PRECISION NOT NULL,
    changed_by BIGINT,
    reason     TEXT NOT NULL DEFAULT '',
    timestamp  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS outbox (
    id         BIGSERIAL PRIMARY KEY,
    topic      TEXT NOT NULL,
    payload    BYTEA NOT NULL,
    msg_type   TEXT NOT NULL DEFAULT '',
    retries    BIGINT NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL,
    sent_at    TEXT
);
CREATE INDEX IF NOT EXISTS idx_outbox_pending ON outbox(sent_at) WHERE sent_at IS NULL;
`
