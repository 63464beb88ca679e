package engine

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tzvibm/capbit/pkg/capbiterr"
	"github.com/tzvibm/capbit/pkg/types"
)

func openTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := Open(filepath.Join(t.TempDir(), "capbit.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = e.Close() })
	return e
}

func TestFreshEngineDeniesEverything(t *testing.T) {
	e := openTestEngine(t)

	bootstrapped, err := e.IsBootstrapped()
	require.NoError(t, err)
	assert.False(t, bootstrapped)

	err = e.Grant(types.Root, 3, 4, uint64(types.Viewer))
	assert.ErrorIs(t, err, capbiterr.ErrPermissionDenied)
}

func TestBootstrapThenCheckRoot(t *testing.T) {
	e := openTestEngine(t)

	systemID, rootID, err := e.Bootstrap()
	require.NoError(t, err)
	assert.EqualValues(t, 1, systemID)
	assert.EqualValues(t, 2, rootID)

	held, err := e.Check(types.Root, types.System, types.AllBits)
	require.NoError(t, err)
	assert.True(t, held)
}

func TestBootstrapTwiceFailsAndLeavesStateUntouched(t *testing.T) {
	e := openTestEngine(t)

	_, _, err := e.Bootstrap()
	require.NoError(t, err)

	_, _, err = e.Bootstrap()
	assert.ErrorIs(t, err, capbiterr.ErrAlreadyBootstrapped)

	held, err := e.Check(types.Root, types.System, types.AllBits)
	require.NoError(t, err)
	assert.True(t, held, "state should be unchanged by the failed second bootstrap")
}

func TestUnauthorizedMutationFails(t *testing.T) {
	e := openTestEngine(t)
	_, _, err := e.Bootstrap()
	require.NoError(t, err)

	err = e.Grant(3, 4, 5, uint64(types.Viewer))
	assert.ErrorIs(t, err, capbiterr.ErrPermissionDenied)

	held, err := e.Check(4, 5, 1)
	require.NoError(t, err)
	assert.False(t, held, "nothing should have been written by the denied mutation")
}

func TestDelegatedGrantSucceeds(t *testing.T) {
	e := openTestEngine(t)
	_, _, err := e.Bootstrap()
	require.NoError(t, err)

	require.NoError(t, e.Grant(types.Root, 3, types.System, uint64(types.Admin)))
	require.NoError(t, e.Grant(3, 4, 5, 0xFF))

	held, err := e.Check(4, 5, 0xFF)
	require.NoError(t, err)
	assert.True(t, held)
}

func TestInheritanceAccumulation(t *testing.T) {
	e := openTestEngine(t)
	_, _, err := e.Bootstrap()
	require.NoError(t, err)

	const object, a, b types.EntityID = 100, 10, 11

	require.NoError(t, e.SetRole(types.Root, object, 7, 0x01))
	require.NoError(t, e.SetRole(types.Root, object, 8, 0x02))
	require.NoError(t, e.Grant(types.Root, b, object, 8))
	require.NoError(t, e.Grant(types.Root, a, object, 7))
	require.NoError(t, e.SetInherit(types.Root, object, a, b))

	mask, err := e.GetMask(a, object)
	require.NoError(t, err)
	assert.EqualValues(t, 0x03, mask)

	held, err := e.Check(a, object, 0x03)
	require.NoError(t, err)
	assert.True(t, held)
}

func TestRoleIDAsLiteralMask(t *testing.T) {
	e := openTestEngine(t)
	_, _, err := e.Bootstrap()
	require.NoError(t, err)

	const a, object types.EntityID = 10, 100
	require.NoError(t, e.Grant(types.Root, a, object, 0xDEADBEEF))

	mask, err := e.GetMask(a, object)
	require.NoError(t, err)
	assert.EqualValues(t, 0xDEADBEEF, mask)
}

func TestSetRoleSecondCallIsANoOp(t *testing.T) {
	e := openTestEngine(t)
	_, _, err := e.Bootstrap()
	require.NoError(t, err)

	require.NoError(t, e.SetRole(types.Root, 100, 7, 0x01))
	require.NoError(t, e.SetRole(types.Root, 100, 7, 0x01))

	mask, ok, err := e.GetRole(100, 7)
	require.NoError(t, err)
	require.True(t, ok)
	assert.EqualValues(t, 0x01, mask)
}

func TestSetThenRemoveInheritRestoresPreState(t *testing.T) {
	e := openTestEngine(t)
	_, _, err := e.Bootstrap()
	require.NoError(t, err)

	const object, child, parent types.EntityID = 100, 10, 11
	require.NoError(t, e.SetRole(types.Root, object, 7, 0x01))
	require.NoError(t, e.Grant(types.Root, parent, object, 7))

	before, err := e.GetMask(child, object)
	require.NoError(t, err)
	assert.EqualValues(t, 0, before)

	require.NoError(t, e.SetInherit(types.Root, object, child, parent))
	during, err := e.GetMask(child, object)
	require.NoError(t, err)
	assert.EqualValues(t, 0x01, during)

	require.NoError(t, e.RemoveInherit(types.Root, object, child))
	after, err := e.GetMask(child, object)
	require.NoError(t, err)
	assert.EqualValues(t, before, after)
}

func TestCreateEntityAllocatesMonotonicIDs(t *testing.T) {
	e := openTestEngine(t)
	_, _, err := e.Bootstrap()
	require.NoError(t, err)

	id1, err := e.CreateEntity(types.Root, "doc:one")
	require.NoError(t, err)
	id2, err := e.CreateEntity(types.Root, "doc:two")
	require.NoError(t, err)

	assert.NotEqual(t, id1, id2)
	assert.Greater(t, uint64(id2), uint64(id1))

	label, ok, err := e.GetLabel(id1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "doc:one", label)

	lookedUp, ok, err := e.LookupByLabel("doc:two")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, id2, lookedUp)
}

func TestDeleteEntityDoesNotCascadeToGrants(t *testing.T) {
	e := openTestEngine(t)
	_, _, err := e.Bootstrap()
	require.NoError(t, err)

	subject, err := e.CreateEntity(types.Root, "user:alice")
	require.NoError(t, err)
	require.NoError(t, e.Grant(types.Root, subject, 100, uint64(types.Viewer)))

	require.NoError(t, e.DeleteEntity(types.Root, subject))

	_, ok, err := e.GetLabel(subject)
	require.NoError(t, err)
	assert.False(t, ok, "label mapping should be gone")

	grants, err := e.ListForSubject(subject)
	require.NoError(t, err)
	assert.Len(t, grants, 1, "the stale grant referencing a deleted entity is tolerated, not cascaded away")
}

func TestSelfRevocationOfLastOwnerIsPermitted(t *testing.T) {
	e := openTestEngine(t)
	_, _, err := e.Bootstrap()
	require.NoError(t, err)

	require.NoError(t, e.Revoke(types.Root, types.Root, types.System))

	held, err := e.Check(types.Root, types.System, types.AllBits)
	require.NoError(t, err)
	assert.False(t, held, "root stripped itself of every bit on _system")

	err = e.Grant(types.Root, 3, 4, uint64(types.Viewer))
	assert.ErrorIs(t, err, capbiterr.ErrPermissionDenied, "no principal holds GRANT on _system any longer")
}

func TestListForObjectViaSecondaryIndex(t *testing.T) {
	e := openTestEngine(t)
	_, _, err := e.Bootstrap()
	require.NoError(t, err)

	require.NoError(t, e.Grant(types.Root, 10, 100, uint64(types.Viewer)))
	require.NoError(t, e.Grant(types.Root, 11, 100, uint64(types.Editor)))

	grants, err := e.ListForObject(100)
	require.NoError(t, err)
	assert.Len(t, grants, 2)
}
