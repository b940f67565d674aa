package accessor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/resgen/resource"
)

func newSet(t *testing.T, entries ...resource.Entry) *resource.Set {
	t.Helper()
	set := resource.NewSet()
	for _, e := range entries {
		require.NoError(t, set.Add(e))
	}
	return set
}

func text(key, value string) resource.Entry {
	return resource.Entry{Key: key, Type: resource.String, Value: resource.Text(value)}
}

func TestResolve_ValidKeysPassThrough(t *testing.T) {
	table := Resolve(newSet(t, text("Greeting", "Hi"), text("Farewell", "Bye")), testOracle{}, DefaultReservedNames)

	assert.Equal(t, []string{"Farewell", "Greeting"}, table.Identifiers())
	assert.Equal(t, "Greeting", table.ResourceKey("Greeting"))
	assert.Empty(t, table.Rejections())
}

func TestResolve_SanitizedKeyKeepsOriginalLookup(t *testing.T) {
	table := Resolve(newSet(t, text("Hello World", "Hi")), testOracle{}, DefaultReservedNames)

	id, ok := table.Identifier("hello world")
	require.True(t, ok)
	assert.Equal(t, "Hello_World", id)
	assert.Equal(t, "Hello World", table.ResourceKey("hello_world"))
}

func TestResolve_CollisionRejectsBoth(t *testing.T) {
	table := Resolve(newSet(t, text("A.B", "1"), text("A_B", "2")), testOracle{}, DefaultReservedNames)

	assert.Empty(t, table.Identifiers())
	assert.Equal(t, []string{"A.B", "A_B"}, table.ErrorKeys())
	for _, r := range table.Rejections() {
		assert.Equal(t, ReasonCollision, r.Reason)
		assert.Equal(t, "a_b", resource.Fold(r.Identifier))
	}
}

func TestResolve_CollisionIgnoresCase(t *testing.T) {
	table := Resolve(newSet(t, text("Foo Bar", "1"), text("foo_bar", "2")), testOracle{}, DefaultReservedNames)

	assert.Empty(t, table.Identifiers())
	assert.Len(t, table.Rejections(), 2)
}

func TestResolve_ThirdKeyOnPoisonedIdentifier(t *testing.T) {
	table := Resolve(newSet(t, text("A-B", "1"), text("A.B", "2"), text("A_B", "3"), text("Other", "4")),
		testOracle{}, DefaultReservedNames)

	assert.Equal(t, []string{"Other"}, table.Identifiers())
	assert.ElementsMatch(t, []string{"A-B", "A.B", "A_B"}, table.ErrorKeys())
}

func TestResolve_Unresolvable(t *testing.T) {
	table := Resolve(newSet(t, text("€", "euro"), text("Price", "1")), testOracle{}, DefaultReservedNames)

	assert.Equal(t, []string{"Price"}, table.Identifiers())
	require.Len(t, table.Rejections(), 1)
	assert.Equal(t, ReasonUnresolvable, table.Rejections()[0].Reason)
}

func TestResolve_ControlKeysSkippedSilently(t *testing.T) {
	table := Resolve(newSet(t,
		text("$this", "x"),
		text(">>Name", "x"),
		text("resourceManager", "x"),
		text("CULTURE", "x"),
		resource.Entry{Key: "Nothing", Type: resource.Void},
		text("Kept", "x"),
	), testOracle{}, DefaultReservedNames)

	assert.Equal(t, []string{"Kept"}, table.Identifiers())
	assert.Empty(t, table.Rejections())
	assert.True(t, table.IsSkipped("$THIS"))
	assert.True(t, table.IsSkipped("Nothing"))
	assert.False(t, table.IsSkipped("Kept"))
}

func TestResolve_CustomReservedNames(t *testing.T) {
	reserved := ReservedNames{ResourceManager: "Manager"}
	table := Resolve(newSet(t, text("Manager", "x"), text("Culture", "y")), testOracle{}, reserved)

	assert.Equal(t, []string{"Culture"}, table.Identifiers())
}

func TestResolve_OrderIndependent(t *testing.T) {
	entries := []resource.Entry{
		text("b c", "1"), text("B_C", "2"), text("a", "3"), text("A-B", "4"),
		text("A.B", "5"), text("z", "6"), text("1x", "7"), text("_1x", "8"),
	}

	var want *NameTable
	for shift := 0; shift < len(entries); shift++ {
		rotated := append(append([]resource.Entry{}, entries[shift:]...), entries[:shift]...)
		got := Resolve(newSet(t, rotated...), testOracle{}, DefaultReservedNames)
		if want == nil {
			want = got
			continue
		}
		assert.Equal(t, want.Identifiers(), got.Identifiers())
		assert.Equal(t, want.ErrorKeys(), got.ErrorKeys())
	}
}

func TestResolve_Partition(t *testing.T) {
	set := newSet(t, text("x y", "1"), text("x_y", "2"), text("ok", "3"), text("$skip", "4"), text("€", "5"))
	table := Resolve(set, testOracle{}, DefaultReservedNames)

	for _, e := range set.Entries() {
		_, resolved := table.Identifier(e.Key)
		rejected := false
		for _, k := range table.ErrorKeys() {
			rejected = rejected || k == e.Key
		}
		skipped := table.IsSkipped(e.Key)

		count := 0
		for _, b := range []bool{resolved, rejected, skipped} {
			if b {
				count++
			}
		}
		assert.Equal(t, 1, count, "key %q must land in exactly one outcome", e.Key)
	}
}
