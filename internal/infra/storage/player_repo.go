package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/celestiamc/discord-bridge/internal/domain"
)

const uniqueViolation = "23505"

const playerColumns = `uuid, player_name, verification_code, verified, discord_id, created_at`

// PlayerRepo is the Postgres player registry. Lookups return (record, found, err)
// so "absent" is never confused with a zero record.
type PlayerRepo struct{ db *sql.DB }

func NewPlayerRepo(db *sql.DB) *PlayerRepo { return &PlayerRepo{db: db} }

func (r *PlayerRepo) FindByUUID(ctx context.Context, uuid string) (domain.LinkedPlayer, bool, error) {
	return r.findOne(ctx, `SELECT `+playerColumns+` FROM players WHERE uuid = $1`, uuid)
}

func (r *PlayerRepo) FindByDiscordID(ctx context.Context, discordID string) (domain.LinkedPlayer, bool, error) {
	return r.findOne(ctx, `SELECT `+playerColumns+` FROM players WHERE discord_id = $1`, discordID)
}

// FindByCode only matches records that have not been linked yet, so a
// consumed code stops resolving.
func (r *PlayerRepo) FindByCode(ctx context.Context, code string) (domain.LinkedPlayer, bool, error) {
	return r.findOne(ctx, `
SELECT `+playerColumns+`
  FROM players
 WHERE verification_code = $1
   AND discord_id IS NULL
 ORDER BY created_at DESC
 LIMIT 1
`, code)
}

// LinkDiscord sets discord_id and verified on the record with this uuid, as
// long as it is still unlinked. found=false means nothing matched.
func (r *PlayerRepo) LinkDiscord(ctx context.Context, uuid, discordID string) (domain.LinkedPlayer, bool, error) {
	p, found, err := r.findOne(ctx, `
UPDATE players
   SET discord_id = $2,
       verified   = TRUE,
       linked_at  = now()
 WHERE uuid = $1
   AND discord_id IS NULL
RETURNING `+playerColumns, uuid, discordID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.LinkedPlayer{}, false, fmt.Errorf("%w: discord id %s already linked", domain.ErrConflict, discordID)
		}
		return domain.LinkedPlayer{}, false, err
	}
	return p, found, nil
}

func (r *PlayerRepo) DeleteByUUID(ctx context.Context, uuid string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM players WHERE uuid = $1`, uuid)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *PlayerRepo) findOne(ctx context.Context, query string, args ...any) (domain.LinkedPlayer, bool, error) {
	var (
		p         domain.LinkedPlayer
		discordID sql.NullString
	)
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&p.UUID, &p.PlayerName, &p.VerificationCode, &p.Verified, &discordID, &p.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.LinkedPlayer{}, false, nil
	}
	if err != nil {
		return domain.LinkedPlayer{}, false, err
	}
	if discordID.Valid {
		id := discordID.String
		p.DiscordID = &id
	}
	return p, true, nil
}
