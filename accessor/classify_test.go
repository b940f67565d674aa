package accessor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/resgen/errors"
	"github.com/teranos/resgen/resource"
)

func TestClassify(t *testing.T) {
	internal := &resource.Type{Name: "Acme.InternalStream", Public: false, Base: resource.Stream}

	tests := []struct {
		name     string
		typ      *resource.Type
		kind     Kind
		declared *resource.Type
	}{
		{"string", resource.String, KindTextual, resource.String},
		{"memory stream", resource.MemoryStream, KindBinary, resource.UnmanagedMemoryStream},
		{"unmanaged stream", resource.UnmanagedMemoryStream, KindBinary, resource.UnmanagedMemoryStream},
		{"bitmap", resource.Bitmap, KindGeneric, resource.Bitmap},
		{"value type", resource.Int32, KindGeneric, resource.Int32},
		{"non-public type", internal, KindGeneric, resource.Stream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, declared, err := Classify(tt.typ)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, kind)
			assert.Same(t, tt.declared, declared)
		})
	}
}

func TestClassify_Unclassifiable(t *testing.T) {
	_, _, err := Classify(nil)
	assert.True(t, errors.Is(err, errors.ErrUnclassifiableType))

	orphan := &resource.Type{Name: "Hidden", Public: false}
	_, _, err = Classify(orphan)
	assert.True(t, errors.Is(err, errors.ErrUnclassifiableType))
	assert.Contains(t, err.Error(), "Hidden")
}

func TestKind_RetrievalMethod(t *testing.T) {
	assert.Equal(t, "GetString", KindTextual.RetrievalMethod())
	assert.Equal(t, "GetStream", KindBinary.RetrievalMethod())
	assert.Equal(t, "GetObject", KindGeneric.RetrievalMethod())

	assert.False(t, KindTextual.NeedsCast())
	assert.False(t, KindBinary.NeedsCast())
	assert.True(t, KindGeneric.NeedsCast())
}
