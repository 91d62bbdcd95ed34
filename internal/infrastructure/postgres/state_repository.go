package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/caja-pos-api/internal/domain/repository"
)

var _ repository.StateRepository = (*StateRepo)(nil)

// StateRepo persiste el estado de la sesión como documentos JSON por clave
// en la tabla session_state. Upsert last-writer-wins: hay una sola caja
// por proceso escribiendo cada clave.
type StateRepo struct {
	q Querier
}

// NewStateRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStateRepository(q Querier) *StateRepo {
	return &StateRepo{q: q}
}

// Save reemplaza el documento de la clave.
func (r *StateRepo) Save(key string, payload []byte) error {
	query := `
		INSERT INTO session_state (key, payload, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET payload = EXCLUDED.payload, updated_at = now()`
	if _, err := r.q.Exec(context.Background(), query, key, payload); err != nil {
		return fmt.Errorf("save state %s: %w", key, err)
	}
	return nil
}

// Load devuelve el documento o (nil, nil) si la clave no existe.
func (r *StateRepo) Load(key string) ([]byte, error) {
	var payload []byte
	err := r.q.QueryRow(context.Background(),
		`SELECT payload FROM session_state WHERE key = $1`, key).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("load state %s: %w", key, err)
	}
	return payload, nil
}
