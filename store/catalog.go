package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/milk9111/marblebounce/codec"
)

// ErrNotFound is returned when a level or share does not exist.
var ErrNotFound = errors.New("store: not found")

// Entry is a stored level. Document is empty in listings.
type Entry struct {
	Owner     string    `json:"owner"`
	Name      string    `json:"name"`
	Revision  string    `json:"revision"`
	Document  string    `json:"document,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
	ShareID   string    `json:"share_id,omitempty"`
}

// Catalog stores level documents per owner and hands out share links.
type Catalog struct {
	db  *sql.DB
	now func() time.Time
}

func NewCatalog(db *sql.DB) *Catalog {
	return &Catalog{db: db, now: time.Now}
}

// Upload validates doc and stores it as owner's level name, replacing any previous revision.
func (c *Catalog) Upload(ctx context.Context, owner, name, doc string) (Entry, error) {
	if owner == "" || name == "" {
		return Entry{}, fmt.Errorf("store: upload: owner and name required")
	}
	if _, err := codec.Decode(doc); err != nil {
		return Entry{}, fmt.Errorf("store: upload %s/%s: %w", owner, name, err)
	}

	e := Entry{Owner: owner, Name: name, Revision: uuid.NewString(), Document: doc, UpdatedAt: c.now().UTC()}
	_, err := c.db.ExecContext(ctx, `
        INSERT INTO levels (owner, name, revision, document, updated_at)
        VALUES (?, ?, ?, ?, ?)
        ON CONFLICT (owner, name) DO UPDATE SET
            revision = excluded.revision,
            document = excluded.document,
            updated_at = excluded.updated_at
    `, e.Owner, e.Name, e.Revision, e.Document, e.UpdatedAt.UnixMilli())
	if err != nil {
		return Entry{}, fmt.Errorf("store: upload %s/%s: %w", owner, name, err)
	}
	e.ShareID, _ = c.shareID(ctx, owner, name)
	return e, nil
}

// Get returns owner's level name with its document.
func (c *Catalog) Get(ctx context.Context, owner, name string) (Entry, error) {
	row := c.db.QueryRowContext(ctx, `
        SELECT l.owner, l.name, l.revision, l.document, l.updated_at, s.id
        FROM levels l
        LEFT JOIN shares s ON s.owner = l.owner AND s.name = l.name
        WHERE l.owner = ? AND l.name = ?
    `, owner, name)
	return scanEntry(row)
}

// GetShared returns the level behind a share id.
func (c *Catalog) GetShared(ctx context.Context, id string) (Entry, error) {
	row := c.db.QueryRowContext(ctx, `
        SELECT l.owner, l.name, l.revision, l.document, l.updated_at, s.id
        FROM shares s
        JOIN levels l ON s.owner = l.owner AND s.name = l.name
        WHERE s.id = ?
    `, id)
	return scanEntry(row)
}

// List returns owner's levels sorted by name, without documents.
func (c *Catalog) List(ctx context.Context, owner string) ([]Entry, error) {
	rows, err := c.db.QueryContext(ctx, `
        SELECT l.owner, l.name, l.revision, l.updated_at, s.id
        FROM levels l
        LEFT JOIN shares s ON s.owner = l.owner AND s.name = l.name
        WHERE l.owner = ?
        ORDER BY l.name
    `, owner)
	if err != nil {
		return nil, fmt.Errorf("store: list %s: %w", owner, err)
	}
	defer rows.Close()

	out := []Entry{}
	for rows.Next() {
		var e Entry
		var updated int64
		var share sql.NullString
		if err := rows.Scan(&e.Owner, &e.Name, &e.Revision, &updated, &share); err != nil {
			return nil, fmt.Errorf("store: list %s: %w", owner, err)
		}
		e.UpdatedAt = time.UnixMilli(updated).UTC()
		e.ShareID = share.String
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: list %s: %w", owner, err)
	}
	return out, nil
}

// Delete removes owner's level name and its share link.
func (c *Catalog) Delete(ctx context.Context, owner, name string) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: delete %s/%s: %w", owner, name, err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM levels WHERE owner = ? AND name = ?`, owner, name)
	if err != nil {
		return fmt.Errorf("store: delete %s/%s: %w", owner, name, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM shares WHERE owner = ? AND name = ?`, owner, name); err != nil {
		return fmt.Errorf("store: delete %s/%s: %w", owner, name, err)
	}
	return tx.Commit()
}

// Share returns the share id of owner's level name, creating one on first use.
func (c *Catalog) Share(ctx context.Context, owner, name string) (string, error) {
	if id, err := c.shareID(ctx, owner, name); err == nil {
		return id, nil
	} else if !errors.Is(err, ErrNotFound) {
		return "", err
	}

	if _, err := c.Get(ctx, owner, name); err != nil {
		return "", err
	}
	id := uuid.NewString()
	if _, err := c.db.ExecContext(ctx, `INSERT INTO shares (id, owner, name) VALUES (?, ?, ?)`, id, owner, name); err != nil {
		return "", fmt.Errorf("store: share %s/%s: %w", owner, name, err)
	}
	return id, nil
}

// Unshare revokes the share link of owner's level name.
func (c *Catalog) Unshare(ctx context.Context, owner, name string) error {
	res, err := c.db.ExecContext(ctx, `DELETE FROM shares WHERE owner = ? AND name = ?`, owner, name)
	if err != nil {
		return fmt.Errorf("store: unshare %s/%s: %w", owner, name, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (c *Catalog) shareID(ctx context.Context, owner, name string) (string, error) {
	var id string
	err := c.db.QueryRowContext(ctx, `SELECT id FROM shares WHERE owner = ? AND name = ?`, owner, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("store: share lookup %s/%s: %w", owner, name, err)
	}
	return id, nil
}

func scanEntry(row *sql.Row) (Entry, error) {
	var e Entry
	var updated int64
	var share sql.NullString
	if err := row.Scan(&e.Owner, &e.Name, &e.Revision, &e.Document, &updated, &share); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, ErrNotFound
		}
		return Entry{}, fmt.Errorf("store: scan level: %w", err)
	}
	e.UpdatedAt = time.UnixMilli(updated).UTC()
	e.ShareID = share.String
	return e, nil
}
