package postgres

// Schema is the DDL for the engine's three tables. Reservations are
// never deleted; RELEASED rows stay behind for the reporting side.
const Schema = `
CREATE TABLE IF NOT EXISTS resources (
    id         UUID PRIMARY KEY,
    class      TEXT NOT NULL,
    label      TEXT NOT NULL,
    capacity   INT  NOT NULL CHECK (capacity >= 1),
    active     BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMPTZ NOT NULL,
    UNIQUE (class, label)
);

CREATE TABLE IF NOT EXISTS reservations (
    id          UUID PRIMARY KEY,
    resource_id UUID NOT NULL REFERENCES resources (id),
    requester   TEXT NOT NULL,
    on_date     DATE NOT NULL,
    start_at    TIMESTAMPTZ,
    end_at      TIMESTAMPTZ,
    whole_day   BOOLEAN NOT NULL,
    status      TEXT NOT NULL,
    created_at  TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_reservations_active
    ON reservations (resource_id, on_date) WHERE status = 'active';

CREATE INDEX IF NOT EXISTS idx_reservations_requester
    ON reservations (requester);

CREATE TABLE IF NOT EXISTS waiting_tickets (
    id          UUID PRIMARY KEY,
    class       TEXT NOT NULL,
    requester   TEXT NOT NULL,
    on_date     DATE NOT NULL,
    start_at    TIMESTAMPTZ,
    end_at      TIMESTAMPTZ,
    whole_day   BOOLEAN NOT NULL,
    capacity    INT NOT NULL,
    enqueued_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_waiting_tickets_class
    ON waiting_tickets (class, enqueued_at);
`
