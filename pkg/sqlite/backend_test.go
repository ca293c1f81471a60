package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/owloop/pkg/descriptor"
	"github.com/mesh-intelligence/owloop/pkg/types"
)

func TestOpenInMemory(t *testing.T) {
	ctx := context.Background()
	onto, err := Open(ctx, types.Config{Name: "robots"}, nil)
	require.NoError(t, err)
	defer onto.Close()

	require.NoError(t, onto.Declare(ctx, types.Class("Robot"), types.Class("Machine")))
	robot, err := descriptor.NewConcept(ctx, onto, "Robot")
	require.NoError(t, err)
	robot.Super.Add(types.Class("Machine"))
	_, err = robot.WriteSemantic(ctx)
	require.NoError(t, err)

	machine, err := descriptor.NewConcept(ctx, onto, "Machine")
	require.NoError(t, err)
	_, err = machine.ReadSemantic(ctx)
	require.NoError(t, err)
	assert.Equal(t, []types.Entity{types.Class("Robot")}, machine.Sub.Members())
	assert.Empty(t, onto.Violations())
}

func TestOpenPersistent(t *testing.T) {
	ctx := context.Background()
	cfg := types.Config{Name: "robots", DataDir: t.TempDir()}

	onto, err := Open(ctx, cfg, nil)
	require.NoError(t, err)
	_, err = onto.Assert(ctx, types.Individual("Robot1"), types.KindType, types.EncodeEntity(types.Class("Robot")))
	require.NoError(t, err)
	require.NoError(t, onto.Close())

	onto, err = Open(ctx, cfg, nil)
	require.NoError(t, err)
	defer onto.Close()
	got, err := onto.Query(ctx, types.Class("Robot"), types.KindInstance)
	require.NoError(t, err)
	assert.Equal(t, []types.Object{types.EncodeEntity(types.Individual("Robot1"))}, got)
}

func TestOpenRejectsOtherBackends(t *testing.T) {
	_, err := Open(context.Background(), types.Config{Name: "robots", Backend: types.BackendBadger}, nil)
	assert.ErrorIs(t, err, types.ErrBackendUnknown)

	_, err = Open(context.Background(), types.Config{Backend: types.BackendSQLite}, nil)
	assert.ErrorIs(t, err, types.ErrInvalidName)
}
