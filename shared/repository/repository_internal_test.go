package repository

import (
	"context"
	"database/sql"
	"testing"

	"hotel/infras/otel/mocks"
	"hotel/shared/dto"
	"hotel/shared/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRoom struct {
	ID     string `db:"id"`
	Number string `db:"number"`
	Status string `db:"status"`
	Label  string `db:"label"  table:"room_types" column:"name"`
	model.Metadata
}

type joinedRoom struct {
	testRoom
}

func (joinedRoom) GetJoinQuery() string {
	return "LEFT JOIN room_types ON room_types.id = rooms.type_id"
}

type capturedExec struct {
	query    string
	args     any
	affected int64
}

func (c *capturedExec) NamedExecContext(_ context.Context, query string, arg interface{}) (sql.Result, error) {
	c.query = query
	c.args = arg

	return driverResult(c.affected), nil
}

type driverResult int64

func (r driverResult) LastInsertId() (int64, error) { return 0, nil }
func (r driverResult) RowsAffected() (int64, error) { return int64(r), nil }

func TestGetColumns(t *testing.T) {
	repo := NewRepository[testRoom]("room", "rooms", "id", nil, mocks.NewOtel())

	assert.Equal(t, []string{"id", "number", "status", "created_at", "modified_at", "created_by", "modified_by"}, repo.InsertColumns)
	assert.Equal(t, []string{
		"rooms.id", "rooms.number", "rooms.status",
		"rooms.created_at", "rooms.modified_at", "rooms.created_by", "rooms.modified_by",
	}, repo.ownColumns())
}

func TestSelectList(t *testing.T) {
	repo := NewRepository[testRoom]("room", "rooms", "id", nil, mocks.NewOtel())

	assert.Equal(t, "rooms.id, rooms.number, room_types.name AS label", repo.selectList("id", "number", "name"))
	assert.Contains(t, repo.selectList(), "rooms.modified_by")
	assert.Empty(t, repo.join)
}

func TestNewRepository_Join(t *testing.T) {
	repo := NewRepository[joinedRoom]("room", "rooms", "id", nil, mocks.NewOtel())

	assert.Equal(t, "LEFT JOIN room_types ON room_types.id = rooms.type_id", repo.join)
}

func TestStatement(t *testing.T) {
	assert.Equal(t, "SELECT id FROM rooms", statement("SELECT", "id", "FROM", "rooms", "", ""))
}

func TestUpdate_CompareAndSet(t *testing.T) {
	repo := NewRepository[testRoom]("room", "rooms", "id", nil, mocks.NewOtel())
	exec := &capturedExec{affected: 1}

	filter := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "id", Value: "room-1", Operator: dto.FilterOperatorEq, Table: "rooms"},
			dto.Filter{Field: "status", Value: "occupied", Operator: dto.FilterOperatorEq, Table: "rooms", ArgName: "current_status"},
		},
	}

	affected, err := repo.update(context.Background(), exec, map[string]any{"status": "cleaning", "modified_by": "staff-1"}, filter)

	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	assert.Equal(t,
		"UPDATE rooms SET modified_by = :set_modified_by, status = :set_status WHERE (rooms.id = :id AND rooms.status = :current_status)",
		exec.query,
	)
	assert.Equal(t, map[string]any{
		"id":              "room-1",
		"current_status":  "occupied",
		"set_status":      "cleaning",
		"set_modified_by": "staff-1",
	}, exec.args)
}

func TestUpdate_RequiresFilter(t *testing.T) {
	repo := NewRepository[testRoom]("room", "rooms", "id", nil, mocks.NewOtel())

	_, err := repo.update(context.Background(), &capturedExec{}, map[string]any{"status": "available"}, dto.FilterGroup{})

	assert.ErrorIs(t, err, errRequiredFilter)
}
