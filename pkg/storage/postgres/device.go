package postgres

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
	"github.com/luxmesh/lampd/pkg/model"
	"github.com/luxmesh/lampd/pkg/storage"
	"github.com/pkg/errors"
)

func newDeviceStore(db *sqlx.DB) *deviceStore {
	return &deviceStore{
		db: db,
	}
}

type deviceStore struct {
	db *sqlx.DB
}

type sqlDataDevice struct {
	DeviceID    string             `db:"device_id"`
	LastState   types.NullJSONText `db:"last_state"`
	LastSeen    *time.Time         `db:"last_seen"`
	LastCommand types.NullJSONText `db:"last_command"`
	CreatedAt   time.Time          `db:"created_at"`
	UpdatedAt   time.Time          `db:"updated_at"`
}

func (d *sqlDataDevice) Model() (*model.Device, error) {
	m := &model.Device{
		DeviceID:  d.DeviceID,
		LastSeen:  d.LastSeen,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}

	if d.LastState.Valid {
		if err := json.Unmarshal(d.LastState.JSONText, &m.LastState); err != nil {
			return nil, errors.Wrap(err, "failed to convert SQL data to state document")
		}
	}

	if d.LastCommand.Valid {
		cmd := model.Command{}
		if err := json.Unmarshal(d.LastCommand.JSONText, &cmd); err != nil {
			return nil, errors.Wrap(err, "failed to convert SQL data to command")
		}
		m.LastCommand = &cmd
	}

	return m, nil
}

func (s *deviceStore) FetchAll() ([]model.Device, error) {
	rows := make([]sqlDataDevice, 0)
	models := make([]model.Device, 0)

	query := "SELECT * FROM devices ORDER BY last_seen DESC NULLS LAST"
	if err := s.db.Select(&rows, query); err != nil {
		return nil, errors.Wrap(err, "failed to fetch all devices")
	}

	for i := range rows {
		m, err := rows[i].Model()
		if err != nil {
			return nil, errors.Wrap(err, "failed to convert SQL data to device model")
		}

		models = append(models, *m)
	}

	return models, nil
}

func (s *deviceStore) FindByDeviceID(deviceID string) (*model.Device, error) {
	d := sqlDataDevice{}
	query := "SELECT * FROM devices WHERE device_id=$1"
	if err := s.db.Get(&d, query, deviceID); err != nil {
		if err == sql.ErrNoRows {
			return nil, storage.ErrNotFound
		}
		return nil, errors.Wrap(err, "failed to find device")
	}

	return d.Model()
}

// UpsertCommand is a single INSERT ... ON CONFLICT statement: the database
// guarantees the record-level atomicity and the created_at set-on-insert
// semantics, concurrent writers resolve last-write-wins.
func (s *deviceStore) UpsertCommand(deviceID string, cmd model.Command, now time.Time) (*model.Device, error) {
	data, err := json.Marshal(cmd)
	if err != nil {
		return nil, errors.Wrap(err, "failed to convert command to SQL data")
	}

	d := sqlDataDevice{}
	query := `INSERT INTO devices (device_id, last_command, created_at, updated_at)
		VALUES ($1, $2, $3, $3)
		ON CONFLICT (device_id) DO UPDATE
		SET last_command = EXCLUDED.last_command, updated_at = EXCLUDED.updated_at
		RETURNING *`
	if err := s.db.Get(&d, query, deviceID, types.JSONText(data), now); err != nil {
		return nil, errors.Wrap(err, "failed to upsert device command")
	}

	return d.Model()
}

// UpsertState mirrors UpsertCommand for the telemetry document and advances
// last_seen.
func (s *deviceStore) UpsertState(deviceID string, doc model.StateDocument, now time.Time) (*model.Device, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, errors.Wrap(err, "failed to convert state document to SQL data")
	}

	d := sqlDataDevice{}
	query := `INSERT INTO devices (device_id, last_state, last_seen, created_at, updated_at)
		VALUES ($1, $2, $3, $3, $3)
		ON CONFLICT (device_id) DO UPDATE
		SET last_state = EXCLUDED.last_state, last_seen = EXCLUDED.last_seen, updated_at = EXCLUDED.updated_at
		RETURNING *`
	if err := s.db.Get(&d, query, deviceID, types.JSONText(data), now); err != nil {
		return nil, errors.Wrap(err, "failed to upsert device state")
	}

	return d.Model()
}
