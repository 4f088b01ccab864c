package main

import (
	"database/sql"
	"fmt"
)

type migration struct {
	name string
	stmt string
}

// Migrations run in listed order and are applied at most once each. Append
// only; never edit an entry that has shipped.
var migrations = []migration{
	{
		name: "0001_pgcrypto",
		stmt: `create extension if not exists "pgcrypto"`,
	},
	{
		name: "0002_projects",
		stmt: `
create table if not exists projects (
    id                    uuid primary key default gen_random_uuid(),
    name                  text not null,
    description           text not null,
    category              text not null,
    impact_areas          text[] not null default '{}',
    funding_platform      text not null,
    governance_model      text not null,
    website_url           text,
    contact_email         text,
    project_profile_image text,
    project_banner_image  text,
    submitted_by          uuid,
    status                text not null default 'Active',
    ai_summary            text,
    created_at            timestamptz not null default now()
)`,
	},
	{
		name: "0003_user_profiles",
		stmt: `
create table if not exists user_profiles (
    user_id              uuid primary key,
    username             text not null,
    bio                  text not null default '',
    profile_photo        text,
    profile_banner_image text,
    interests            text[] not null default '{}',
    social_links         text[] not null default '{}',
    created_at           timestamptz not null default now(),
    updated_at           timestamptz not null default now()
)`,
	},
	{
		name: "0004_donations",
		stmt: `
create table if not exists donations (
    id             uuid primary key default gen_random_uuid(),
    project_id     uuid not null references projects (id),
    user_id        uuid,
    amount         bigint not null check (amount > 0),
    payment_method text not null default '',
    created_at     timestamptz not null default now()
)`,
	},
	{
		name: "0005_search_indexes",
		stmt: `
create index if not exists idx_projects_category on projects (category);
create index if not exists idx_projects_status on projects (status);
create index if not exists idx_donations_created_at on donations (created_at desc)`,
	},
}

func runMigrations(db *sql.DB) (int, error) {
	if _, err := db.Exec(`
create table if not exists schema_migrations (
    name       text primary key,
    applied_at timestamptz not null default now()
)`); err != nil {
		return 0, fmt.Errorf("ensure schema_migrations: %w", err)
	}

	applied := 0
	for _, m := range migrations {
		done, err := alreadyApplied(db, m.name)
		if err != nil {
			return applied, err
		}
		if done {
			continue
		}
		if err := apply(db, m); err != nil {
			return applied, err
		}
		applied++
	}
	return applied, nil
}

func alreadyApplied(db *sql.DB, name string) (bool, error) {
	var count int
	if err := db.QueryRow(`select count(*) from schema_migrations where name = $1`, name).Scan(&count); err != nil {
		return false, fmt.Errorf("check migration %s: %w", name, err)
	}
	return count > 0, nil
}

func apply(db *sql.DB, m migration) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin %s: %w", m.name, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(m.stmt); err != nil {
		return fmt.Errorf("apply %s: %w", m.name, err)
	}
	if _, err := tx.Exec(`insert into schema_migrations (name) values ($1)`, m.name); err != nil {
		return fmt.Errorf("record %s: %w", m.name, err)
	}
	return tx.Commit()
}
