package badger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/owloop/pkg/types"
)

func typeOf(ind, class string) types.Axiom {
	return types.NewAxiom(types.Individual(ind), types.PredType, types.EncodeEntity(types.Class(class)))
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open(Config{})
	assert.ErrorIs(t, err, types.ErrDataDirRequired)
}

func TestStoreInMemory(t *testing.T) {
	ctx := context.Background()
	s, err := Open(Config{InMemory: true})
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Declare(ctx, types.Individual("r1")))
	require.NoError(t, s.Declare(ctx, types.Class("Robot")))
	require.NoError(t, s.Declare(ctx, types.Individual("r1")))
	entities, err := s.Entities(ctx)
	require.NoError(t, err)
	assert.Equal(t, []types.Entity{types.Individual("r1"), types.Class("Robot")}, entities)

	a := typeOf("r1", "Robot")
	ok, err := s.Insert(ctx, a)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = s.Insert(ctx, typeOf("r1", "Robot"))
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = s.Insert(ctx, typeOf("r2", "Robot"))
	require.NoError(t, err)

	got, err := s.Axioms(ctx, types.AxiomFilter{Subject: types.Individual("r2")})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, types.Class("Robot"), got[0].Object.Entity)

	ok, err = s.Delete(ctx, a.Statement())
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = s.Delete(ctx, a.Statement())
	require.NoError(t, err)
	assert.False(t, ok)

	all, err := s.Axioms(ctx, types.AxiomFilter{Predicate: types.PredType})
	require.NoError(t, err)
	assert.Len(t, all, 1)
	require.NoError(t, s.Flush(ctx))
}

func TestStorePersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := Open(Config{Path: dir, SyncWrites: true})
	require.NoError(t, err)
	require.NoError(t, s.Declare(ctx, types.Class("A")))
	for _, c := range []string{"A", "B", "C"} {
		_, err := s.Insert(ctx, typeOf("r1", c))
		require.NoError(t, err)
	}
	require.NoError(t, s.Flush(ctx))
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	_, err = s.Entities(ctx)
	assert.ErrorIs(t, err, types.ErrStoreDetached)

	s2, err := Open(Config{Path: dir})
	require.NoError(t, err)
	defer s2.Close()

	entities, err := s2.Entities(ctx)
	require.NoError(t, err)
	assert.Equal(t, []types.Entity{types.Class("A")}, entities)

	axioms, err := s2.Axioms(ctx, types.AxiomFilter{})
	require.NoError(t, err)
	require.Len(t, axioms, 3)
	for i, c := range []string{"A", "B", "C"} {
		assert.Equal(t, c, axioms[i].Object.Entity.Name)
	}

	ok, err := s2.Insert(ctx, typeOf("r1", "B"))
	require.NoError(t, err)
	assert.False(t, ok, "index survives reopening")
}

func TestInsertKeepsNamesWithSeparators(t *testing.T) {
	ctx := context.Background()
	s, err := Open(Config{InMemory: true})
	require.NoError(t, err)
	defer s.Close()

	ok, err := s.Insert(ctx, typeOf("r|1", "A"))
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = s.Insert(ctx, typeOf("r", "1|A"))
	require.NoError(t, err)
	assert.True(t, ok)
}
